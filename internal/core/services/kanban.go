package services

import (
	"fmt"
	"sync"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// titleFields are tried in order to label a card.
var titleFields = []string{"title", "name", "Name", "Title"}

type boardCard struct {
	title  string
	column string
	good   string // last column the backend confirmed
	state  domain.CardState
	data   map[string]any
}

// KanbanBoard is the optimistic kanban state of one PM workspace. A move is
// shown immediately as pending and later committed or reverted.
type KanbanBoard struct {
	workspaceID string

	mu      sync.Mutex
	columns []string
	cards   map[string]*boardCard
	order   []string
}

// NewKanbanBoard creates an empty board with the default columns.
func NewKanbanBoard(workspaceID string) *KanbanBoard {
	return &KanbanBoard{
		workspaceID: workspaceID,
		columns:     append([]string(nil), domain.DefaultBoardColumns...),
		cards:       make(map[string]*boardCard),
	}
}

// Load rebuilds the board from rows. Cards with an unsettled move keep their
// optimistic column.
func (k *KanbanBoard) Load(rows []domain.Row) {
	k.mu.Lock()
	defer k.mu.Unlock()

	cards := make(map[string]*boardCard, len(rows))
	order := make([]string, 0, len(rows))
	columns := append([]string(nil), domain.DefaultBoardColumns...)
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	for _, row := range rows {
		if row.RowID == "" {
			continue
		}
		if _, seen := cards[row.RowID]; seen {
			continue
		}
		status := rowStatus(row)
		card := &boardCard{
			title:  rowTitle(row),
			column: status,
			good:   status,
			state:  domain.CardSynced,
			data:   domain.MergeData(nil, row.Data),
		}
		if prev, ok := k.cards[row.RowID]; ok {
			card.state = prev.state
			if prev.state == domain.CardPending {
				card.column = prev.column
				card.good = prev.good
			}
		}
		if !known[card.column] {
			known[card.column] = true
			columns = append(columns, card.column)
		}
		cards[row.RowID] = card
		order = append(order, row.RowID)
	}

	k.columns = columns
	k.cards = cards
	k.order = order
}

// Move shows the card in toColumn as pending. It returns the column the card
// was in before.
func (k *KanbanBoard) Move(rowID, toColumn string) (string, error) {
	if toColumn == "" {
		return "", apperrors.NewValidationError("target column is required")
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	card, ok := k.cards[rowID]
	if !ok {
		return "", fmt.Errorf("card %s: %w", rowID, apperrors.ErrNotFound)
	}
	from := card.column
	card.column = toColumn
	card.state = domain.CardPending
	k.ensureColumnLocked(toColumn)
	return from, nil
}

// Commit records column as confirmed by the backend. The card is marked
// committed only when it has not moved elsewhere since.
func (k *KanbanBoard) Commit(rowID, column string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	card, ok := k.cards[rowID]
	if !ok {
		return
	}
	card.good = column
	if card.column == column {
		card.state = domain.CardCommitted
	}
}

// Revert returns the card to its last confirmed column. It does nothing when
// the card has moved elsewhere since. It returns the column the card is in.
func (k *KanbanBoard) Revert(rowID, column string) string {
	k.mu.Lock()
	defer k.mu.Unlock()
	card, ok := k.cards[rowID]
	if !ok {
		return ""
	}
	if card.column != column {
		return card.column
	}
	card.column = card.good
	card.state = domain.CardReverted
	return card.column
}

// Card returns one card.
func (k *KanbanBoard) Card(rowID string) (domain.Card, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	card, ok := k.cards[rowID]
	if !ok {
		return domain.Card{}, false
	}
	return card.view(rowID), true
}

// View returns the board grouped by column.
func (k *KanbanBoard) View() *domain.Board {
	k.mu.Lock()
	defer k.mu.Unlock()

	board := &domain.Board{WorkspaceID: k.workspaceID, Columns: make([]domain.BoardColumn, len(k.columns))}
	index := make(map[string]int, len(k.columns))
	for i, name := range k.columns {
		board.Columns[i] = domain.BoardColumn{Name: name, Cards: []domain.Card{}}
		index[name] = i
	}
	for _, id := range k.order {
		card := k.cards[id]
		i := index[card.column]
		board.Columns[i].Cards = append(board.Columns[i].Cards, card.view(id))
	}
	return board
}

func (k *KanbanBoard) ensureColumnLocked(name string) {
	for _, c := range k.columns {
		if c == name {
			return
		}
	}
	k.columns = append(k.columns, name)
}

func (c *boardCard) view(id string) domain.Card {
	return domain.Card{RowID: id, Title: c.title, Column: c.column, State: c.state, Data: domain.MergeData(nil, c.data)}
}

func rowStatus(row domain.Row) string {
	if s, ok := row.Data[domain.StatusField].(string); ok && s != "" {
		return s
	}
	return domain.StatusTodo
}

func rowTitle(row domain.Row) string {
	for _, f := range titleFields {
		if s, ok := row.Data[f].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
