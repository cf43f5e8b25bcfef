package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/intecelectric/crm-api/internal/domain/entity"
)

// Line items hang off either a job or an invoice; both repos share the same
// wholesale-replace and ordered-list plumbing, differing only in the FK column.

func replaceLineItems(q Querier, fkColumn, parentID string, items []*entity.LineItem) error {
	ctx := context.Background()
	if _, err := q.Exec(ctx,
		fmt.Sprintf(`DELETE FROM line_items WHERE %s = $1`, fkColumn), parentID); err != nil {
		return fmt.Errorf("clear line items: %w", err)
	}
	query := fmt.Sprintf(`
		INSERT INTO line_items (id, %s, description, quantity, unit_price, amount, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, fkColumn)
	for i, li := range items {
		if li.ID == "" {
			li.ID = uuid.New().String()
		}
		li.ParentID = parentID
		li.SortOrder = i
		if _, err := q.Exec(ctx, query,
			li.ID, parentID, li.Description, li.Quantity, li.UnitPrice, li.Amount, li.SortOrder,
		); err != nil {
			return fmt.Errorf("insert line item: %w", err)
		}
	}
	return nil
}

func listLineItems(q Querier, fkColumn, parentID string) ([]*entity.LineItem, error) {
	query := fmt.Sprintf(`
		SELECT id, %s, description, quantity, unit_price, amount, sort_order
		FROM line_items WHERE %s = $1 ORDER BY sort_order`, fkColumn, fkColumn)
	rows, err := q.Query(context.Background(), query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()

	var list []*entity.LineItem
	for rows.Next() {
		var li entity.LineItem
		if err := rows.Scan(&li.ID, &li.ParentID, &li.Description, &li.Quantity,
			&li.UnitPrice, &li.Amount, &li.SortOrder); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		list = append(list, &li)
	}
	return list, rows.Err()
}
