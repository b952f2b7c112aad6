package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrKindChange     = fmt.Errorf("kind cannot change after creation: %w", ledger.ErrInvariantViolation)
	ErrEditorRequired = fmt.Errorf("editor is required: %w", ledger.ErrInvariantViolation)
)

// Repository is the tabular row source backing the ledger. Row indexes are
// 0-based positions among the data rows returned by ReadAll.
//
//go:generate mockgen -source=service.go -destination=repository_mock.go -package=record
type Repository interface {
	Headers(ctx context.Context) ([]string, error)
	SetHeaders(ctx context.Context, headers []string) error
	ReadAll(ctx context.Context) ([]ledger.Row, error)
	Append(ctx context.Context, row ledger.Row) error
	Update(ctx context.Context, rowIndex int, row ledger.Row) error
}

type Options struct {
	Participants ledger.Participants
	Location     *time.Location
	BaseCurrency string
	Rates        ledger.RateSource
	FallbackRate decimal.Decimal
	Now          func() time.Time
	NewID        func() string
}

type Service struct {
	repo         Repository
	participants ledger.Participants
	loc          *time.Location
	currency     ledger.CurrencyNormalizer
	now          func() time.Time
	newID        func() string
}

func NewService(repo Repository, opts Options) *Service {
	s := &Service{
		repo:         repo,
		participants: opts.Participants,
		loc:          opts.Location,
		currency: ledger.CurrencyNormalizer{
			Base:     strings.ToUpper(opts.BaseCurrency),
			Source:   opts.Rates,
			Fallback: opts.FallbackRate,
		},
		now:   opts.Now,
		newID: opts.NewID,
	}

	if s.loc == nil {
		s.loc = time.UTC
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.newID == nil {
		s.newID = uuid.NewString
	}

	return s
}

func (s *Service) Participants() ledger.Participants { return s.participants }
func (s *Service) BaseCurrency() string              { return s.currency.Base }
func (s *Service) Location() *time.Location          { return s.loc }

// Snapshot is the ledger as read in one pass.
type Snapshot struct {
	Headers      []string
	Rows         []ledger.Row
	Transactions []ledger.Transaction
	Issues       []*ledger.FieldError
}

// Active returns the non-voided transactions.
func (s *Snapshot) Active() []ledger.Transaction {
	return ledger.Active(s.Transactions)
}

// Find looks a transaction up by ID.
func (s *Snapshot) Find(id string) (ledger.Transaction, bool) {
	for _, t := range s.Transactions {
		if t.ID != "" && t.ID == id {
			return t, true
		}
	}

	return ledger.Transaction{}, false
}

// Refresh reads the whole row source and normalizes it. A source failure
// aborts the pass.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	headers, err := s.repo.Headers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading headers: %w", ledger.ErrSourceUnavailable, err)
	}

	rows, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading rows: %w", ledger.ErrSourceUnavailable, err)
	}

	n := s.normalizer()
	txs := n.Normalize(rows, headers)

	if len(n.Issues) > 0 {
		slog.Debug("normalized rows with malformed values", "rows", len(rows), "issues", len(n.Issues))
	}

	return &Snapshot{
		Headers:      headers,
		Rows:         rows,
		Transactions: txs,
		Issues:       n.Issues,
	}, nil
}

// Migrate appends the expected headers missing from the source. It returns
// the headers it added.
func (s *Service) Migrate(ctx context.Context) ([]string, error) {
	existing, err := s.repo.Headers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading headers: %w", ledger.ErrSourceUnavailable, err)
	}

	merged, added := ledger.MergeHeaders(existing, ledger.Columns)
	if len(added) == 0 {
		return nil, nil
	}

	if err := s.repo.SetHeaders(ctx, merged); err != nil {
		return nil, fmt.Errorf("%w: writing headers: %w", ledger.ErrSourceUnavailable, err)
	}

	slog.Info("added missing headers", "headers", added)

	return added, nil
}

type CreateParams struct {
	Kind          ledger.Kind
	Detail        string
	Category      string
	Date          time.Time
	Person        string
	OriginPerson  string
	DestPerson    string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
	IsShared      bool
	ShareA        int
	ShareB        int
	Actor         string
}

// Create validates and appends a new record. Nothing is written when
// validation fails.
func (s *Service) Create(ctx context.Context, params CreateParams) (*ledger.Transaction, error) {
	conv := s.currency.Convert(ctx, params.Amount, params.Currency, params.Date)

	date := dateOnly(params.Date, s.loc)
	tx := ledger.Transaction{
		ID:             s.newID(),
		Kind:           params.Kind,
		Detail:         strings.TrimSpace(params.Detail),
		Category:       strings.TrimSpace(params.Category),
		Date:           &date,
		Person:         params.Person,
		OriginPerson:   params.OriginPerson,
		DestPerson:     params.DestPerson,
		AmountBase:     conv.AmountBase,
		AmountOriginal: conv.AmountOriginal,
		Currency:       conv.Currency,
		PaymentMethod:  strings.TrimSpace(params.PaymentMethod),
		IsShared:       params.IsShared,
		ShareA:         params.ShareA,
		ShareB:         params.ShareB,
		CreatedAt:      s.now().In(s.loc).Format(ledger.TimestampLayout),
		CreatedBy:      params.Actor,
	}

	shape(&tx)

	if err := ledger.Validate(tx, s.participants, s.now()); err != nil {
		return nil, err
	}

	if _, err := s.Migrate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Append(ctx, ledger.ToRow(tx)); err != nil {
		return nil, fmt.Errorf("%w: appending record: %w", ledger.ErrSourceUnavailable, err)
	}

	return &tx, nil
}

// EditParams overwrites the non-nil fields of a record.
type EditParams struct {
	Kind          *ledger.Kind
	Detail        *string
	Category      *string
	Date          *time.Time
	Person        *string
	OriginPerson  *string
	DestPerson    *string
	Amount        *decimal.Decimal
	Currency      *string
	PaymentMethod *string
	IsShared      *bool
	ShareA        *int
	ShareB        *int
	Editor        string
}

// Edit overwrites a record in place. The kind is fixed at creation.
func (s *Service) Edit(ctx context.Context, id string, params EditParams) (*ledger.Transaction, error) {
	if strings.TrimSpace(params.Editor) == "" {
		return nil, ErrEditorRequired
	}

	snap, err := s.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	tx, ok := snap.Find(id)
	if !ok {
		return nil, ErrNotFound
	}

	if params.Kind != nil && *params.Kind != tx.Kind {
		return nil, ErrKindChange
	}

	setString(&tx.Detail, params.Detail)
	setString(&tx.Category, params.Category)
	setString(&tx.Person, params.Person)
	setString(&tx.OriginPerson, params.OriginPerson)
	setString(&tx.DestPerson, params.DestPerson)
	setString(&tx.PaymentMethod, params.PaymentMethod)

	if params.Date != nil {
		d := dateOnly(*params.Date, s.loc)
		tx.Date = &d
	}

	if params.IsShared != nil {
		tx.IsShared = *params.IsShared
	}

	if params.ShareA != nil {
		tx.ShareA = *params.ShareA
	}

	if params.ShareB != nil {
		tx.ShareB = *params.ShareB
	}

	if params.Amount != nil || params.Currency != nil {
		amount := tx.AmountOriginal
		if params.Amount != nil {
			amount = *params.Amount
		}

		currency := tx.Currency
		if params.Currency != nil {
			currency = *params.Currency
		}

		date := s.now()
		if tx.Date != nil {
			date = *tx.Date
		}

		conv := s.currency.Convert(ctx, amount, currency, date)
		tx.AmountBase, tx.AmountOriginal, tx.Currency = conv.AmountBase, conv.AmountOriginal, conv.Currency
	}

	shape(&tx)
	s.touch(&tx, params.Editor)

	if err := ledger.Validate(tx, s.participants, s.now()); err != nil {
		return nil, err
	}

	if err := s.write(ctx, snap, tx); err != nil {
		return nil, err
	}

	return &tx, nil
}

// Void soft-deletes a record. Voiding an already voided record is a no-op.
func (s *Service) Void(ctx context.Context, id, editor string) (*ledger.Transaction, error) {
	if strings.TrimSpace(editor) == "" {
		return nil, ErrEditorRequired
	}

	snap, err := s.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	tx, ok := snap.Find(id)
	if !ok {
		return nil, ErrNotFound
	}

	if tx.Voided {
		return &tx, nil
	}

	tx.Voided = true
	s.touch(&tx, editor)

	if err := s.write(ctx, snap, tx); err != nil {
		return nil, err
	}

	return &tx, nil
}

// write overwrites the row of tx, keeping columns the ledger does not own.
func (s *Service) write(ctx context.Context, snap *Snapshot, tx ledger.Transaction) error {
	if _, err := s.Migrate(ctx); err != nil {
		return err
	}

	row := ledger.Row{}
	if tx.RowIndex >= 0 && tx.RowIndex < len(snap.Rows) {
		maps.Copy(row, snap.Rows[tx.RowIndex])
	}

	maps.Copy(row, ledger.ToRow(tx))

	if err := s.repo.Update(ctx, tx.RowIndex, row); err != nil {
		return fmt.Errorf("%w: updating row %d: %w", ledger.ErrSourceUnavailable, tx.RowIndex, err)
	}

	return nil
}

func (s *Service) touch(tx *ledger.Transaction, editor string) {
	tx.ModifiedAt = s.now().In(s.loc).Format(ledger.TimestampLayout)
	tx.ModifiedBy = editor
}

func (s *Service) normalizer() *ledger.Normalizer {
	return &ledger.Normalizer{
		Participants: s.participants,
		Location:     s.loc,
		BaseCurrency: s.currency.Base,
	}
}

// shape clears the fields that do not apply to the record's kind and
// resolves the split of shared expenses.
func shape(tx *ledger.Transaction) {
	switch tx.Kind {
	case ledger.KindTransfer:
		tx.Person, tx.Category, tx.PaymentMethod = "", "", ""
		tx.IsShared = false
	case ledger.KindIncome, ledger.KindExpense:
		tx.OriginPerson, tx.DestPerson = "", ""
	}

	if tx.Kind != ledger.KindExpense {
		tx.IsShared = false
	}

	if tx.IsShared {
		tx.ShareA, tx.ShareB = ledger.ResolveShares(tx.ShareA, tx.ShareB)
	} else {
		tx.ShareA, tx.ShareB = 0, 0
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
