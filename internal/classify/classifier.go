// Package classify maps free-text expense descriptions onto the closed
// category set using a tiered fallback: an ordered keyword table, an
// optional local text model, an optional remote completion service, and
// finally the Other default. Classification assists expense entry and must
// never block it, so every tier beyond the first is allowed to fail
// silently and Classify always returns a usable category.
package classify

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Rprog-06/Expense-Tracker/internal/llm"
	"github.com/Rprog-06/Expense-Tracker/internal/model"
)

// Source identifies the tier that produced a classification.
type Source string

// The tiers, in the order they are attempted.
const (
	SourceKeyword Source = "keyword"
	SourceModel   Source = "model"
	SourceRemote  Source = "remote"
	SourceDefault Source = "default"
)

const defaultRemoteTimeout = 10 * time.Second

// Classifier assigns categories to descriptions. All state is fixed at
// construction, so one Classifier is safe for concurrent use.
type Classifier struct {
	model    *Model
	remote   llm.Client
	keywords []keywordRule
	timeout  time.Duration
}

// Options configures a Classifier. A nil Model or Remote disables that tier
// rather than being an error: classification degrades, it never refuses.
type Options struct {
	Model         *Model
	Remote        llm.Client
	RemoteTimeout time.Duration
}

// New creates a Classifier with the built-in keyword table.
func New(opts Options) *Classifier {
	timeout := opts.RemoteTimeout
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &Classifier{
		keywords: defaultKeywords,
		model:    opts.Model,
		remote:   opts.Remote,
		timeout:  timeout,
	}
}

// result is one tier's outcome: a category, or nothing.
type result struct {
	category model.Category
	ok       bool
}

func classified(c model.Category) result { return result{category: c, ok: true} }

var unclassified = result{}

// Classify returns the category for a description. It never fails and never
// blocks longer than the remote timeout.
func (c *Classifier) Classify(ctx context.Context, description string) model.Category {
	category, _ := c.ClassifyWithSource(ctx, description)
	return category
}

// ClassifyWithSource also reports which tier decided.
func (c *Classifier) ClassifyWithSource(ctx context.Context, description string) (model.Category, Source) {
	tiers := []struct {
		try    func(context.Context, string) result
		source Source
	}{
		{c.matchKeyword, SourceKeyword},
		{c.predictLocal, SourceModel},
		{c.askRemote, SourceRemote},
	}

	for _, tier := range tiers {
		if res := tier.try(ctx, description); res.ok {
			return res.category, tier.source
		}
	}
	return model.CategoryOther, SourceDefault
}

// matchKeyword scans the ordered keyword table; the first keyword contained
// anywhere in the lowercased description wins.
func (c *Classifier) matchKeyword(_ context.Context, description string) result {
	text := strings.ToLower(description)
	for _, rule := range c.keywords {
		if strings.Contains(text, rule.keyword) {
			return classified(rule.category)
		}
	}
	return unclassified
}

// predictLocal consults the trained text model when one was provided. A
// prediction outside the closed set is discarded, not trusted.
func (c *Classifier) predictLocal(_ context.Context, description string) result {
	if c.model == nil {
		return unclassified
	}
	label, ok := c.model.Predict(description)
	if !ok {
		return unclassified
	}
	category, ok := model.ParseCategory(label)
	if !ok {
		slog.Debug("local model predicted an unknown label", "label", label)
		return unclassified
	}
	return classified(category)
}

// askRemote makes one timeout-bounded completion call. There are no
// retries; any failure degrades to "no result" and is only logged.
func (c *Classifier) askRemote(ctx context.Context, description string) result {
	if c.remote == nil {
		return unclassified
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.remote.Complete(ctx, buildPrompt(description))
	if err != nil {
		slog.Debug("remote classification failed", "error", err)
		return unclassified
	}

	category, ok := matchReply(resp.Text)
	if !ok {
		slog.Debug("remote classification reply not recognized", "reply", resp.Text)
		return unclassified
	}
	return classified(category)
}
