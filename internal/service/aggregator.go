package service

import (
	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
)

// Aggregate parses every cart line, resolves it against the catalog and folds
// the survivors into per-category line items. Lines that fail to parse or
// resolve are reported in the returned skip list and otherwise ignored.
func Aggregate(lines []string, catalog *model.Catalog) (model.Aggregation, []model.SkippedLine) {
	agg := make(model.Aggregation)
	var skipped []model.SkippedLine

	for i, line := range lines {
		parsed, err := ParseCartLine(line)
		if err != nil {
			skipped = append(skipped, model.SkippedLine{Index: i, Line: line, Reason: skipReason(err)})
			continue
		}

		item, ok := catalog.Lookup(parsed.MainItem)
		if !ok {
			skipped = append(skipped, model.SkippedLine{Index: i, Line: line, Reason: model.SkipUnknownItem})
			continue
		}

		category := model.DisplayCategory(item.Category)
		bucket, ok := agg[category]
		if !ok {
			bucket = make(map[string]*model.LineItem)
			agg[category] = bucket
		}

		li, ok := bucket[item.Name]
		if !ok {
			li = &model.LineItem{
				Name:      item.Name,
				UnitPrice: item.Price,
				Extras:    make(map[string]int),
			}
			bucket[item.Name] = li
		}

		li.Quantity++
		for _, extra := range parsed.Extras {
			li.Extras[extra]++
		}
	}

	return agg, skipped
}
