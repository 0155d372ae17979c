package classify

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jbrukh/bayesian"

	"github.com/Rprog-06/Expense-Tracker/internal/model"
)

// Model is a multinomial naive Bayes text classifier trained on labeled
// expense descriptions. It is read-only after construction and safe for
// concurrent Predict calls.
type Model struct {
	classifier *bayesian.Classifier
}

// Example is one labeled training document.
type Example struct {
	Description string
	Category    model.Category
}

// categoryClasses returns the closed set as bayesian classes in canonical
// order, so class indexes are stable between training and loading.
func categoryClasses() []bayesian.Class {
	cats := model.Categories()
	classes := make([]bayesian.Class, len(cats))
	for i, c := range cats {
		classes[i] = bayesian.Class(c)
	}
	return classes
}

// TrainModel fits a model on the given examples. Examples with no usable
// tokens or a label outside the closed set are skipped.
func TrainModel(examples []Example) (*Model, error) {
	classifier := bayesian.NewClassifier(categoryClasses()...)

	learned := 0
	for _, ex := range examples {
		tokens := Tokenize(ex.Description)
		if len(tokens) == 0 || !ex.Category.Known() {
			continue
		}
		classifier.Learn(tokens, bayesian.Class(ex.Category))
		learned++
	}
	if learned == 0 {
		return nil, fmt.Errorf("no usable training examples")
	}

	return &Model{classifier: classifier}, nil
}

// LoadModel reads a model artifact written by Save. Callers treat a missing
// or unreadable artifact as "tier disabled", never as fatal.
func LoadModel(path string) (*Model, error) {
	classifier, err := bayesian.NewClassifierFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model artifact: %w", err)
	}
	return &Model{classifier: classifier}, nil
}

// Save writes the model artifact to path.
func (m *Model) Save(path string) error {
	if err := m.classifier.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write model artifact: %w", err)
	}
	return nil
}

// Predict returns the most likely category label for a description. It
// reports false when the description carries no usable tokens.
func (m *Model) Predict(description string) (string, bool) {
	tokens := Tokenize(description)
	if len(tokens) == 0 {
		return "", false
	}
	_, inx, _ := m.classifier.LogScores(tokens)
	return string(m.classifier.Classes[inx]), true
}

// Tokenize lowercases a description and splits it into letter/digit runs,
// the same bag-of-words treatment the model is trained with.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
