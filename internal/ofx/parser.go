// Package ofx converts bank OFX/QFX exports into expense records. Only
// debits become expenses; classification of the resulting descriptions
// happens downstream.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Rprog-06/Expense-Tracker/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Fix SGML-style opening tags missing their closing bracket
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns the debits it contains as
// uncategorized expenses.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]model.Expense, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var expenses []model.Expense
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			expenses = append(expenses, p.convertStatement(stmt.BankTranList)...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			expenses = append(expenses, p.convertStatement(stmt.BankTranList)...)
		}
	}

	slog.Info("parsed OFX file",
		"expenses", len(expenses),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return expenses, nil
}

// convertStatement turns a transaction list into expenses, keeping only
// debits (negative amounts in OFX).
func (p *Parser) convertStatement(list *ofxgo.TransactionList) []model.Expense {
	if list == nil {
		return nil
	}

	var expenses []model.Expense
	for _, tx := range list.Transactions {
		amount := decimal.NewFromBigRat(&tx.TrnAmt.Rat, 2)
		if !amount.IsNegative() {
			// Credits are income, not expenses.
			continue
		}

		expenses = append(expenses, model.Expense{
			ID:          string(tx.FiTID),
			Date:        tx.DtPosted.Time,
			Description: p.describe(tx),
			Amount:      amount.Neg(),
		})
	}
	return expenses
}

// describe picks the most useful description from the OFX fields.
func (p *Parser) describe(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}
	name := strings.TrimSpace(string(tx.Name))
	memo := strings.TrimSpace(string(tx.Memo))
	if name == "" {
		return memo
	}
	if memo != "" && !strings.EqualFold(name, memo) {
		return name + " " + memo
	}
	return name
}
