package xltrail

import (
	"go.uber.org/zap"

	"github.com/xltrail/xltrail-go/pkg/xltrail/linediff"
	"github.com/xltrail/xltrail-go/pkg/xltrail/models"
	"github.com/xltrail/xltrail-go/pkg/xltrail/reconcile"
)

// absentLabel replaces the path label of a side that lacks the artifact.
const absentLabel = "/dev/null"

// Compare extracts revision A (the new file, "ours") and revision B (the old
// file, "theirs") and returns their diff records.
func Compare(name, pathA, pathB string, opts Options) ([]models.DiffRecord, error) {
	a, err := Extract(pathA, opts)
	if err != nil {
		return nil, err
	}
	b, err := Extract(pathB, opts)
	if err != nil {
		return nil, err
	}
	records := Records(name, a, b, opts.context())

	log := opts.logger()
	for _, rec := range records {
		added, removed := rec.Counts()
		log.Debug("Diffed artifact",
			zap.String("a", rec.HeaderA),
			zap.String("b", rec.HeaderB),
			zap.Int("added", added),
			zap.Int("removed", removed))
	}
	return records, nil
}

// Records diffs the artifacts of a against b. Module records come first, in
// A order then B-only order, followed by one record per sheet of either
// revision. Lines removed from B show as "-", lines added in A as "+".
func Records(name string, a, b *models.Workbook, context int) []models.DiffRecord {
	var records []models.DiffRecord
	for _, e := range reconcile.Modules(a.Modules, b.Modules) {
		records = append(records, moduleRecord(name, e, a, b, context))
	}
	for _, e := range reconcile.Sheets(a.Sheets, b.Sheets) {
		records = append(records, sheetRecord(name, e, a, b, context))
	}
	return records
}

func moduleRecord(name string, e reconcile.Entry, a, b *models.Workbook, context int) models.DiffRecord {
	label := name + "/VBA/" + e.Key
	ma, _ := a.Modules.Get(e.Key)
	mb, _ := b.Modules.Get(e.Key)

	switch e.Status {
	case reconcile.Added:
		return models.DiffRecord{
			HeaderA: "--- " + absentLabel,
			HeaderB: "+++ b/" + label,
			Lines:   linediff.Diff(nil, ma.Lines(), context),
		}
	case reconcile.Removed:
		return models.DiffRecord{
			HeaderA: "--- a/" + label,
			HeaderB: "+++ " + absentLabel,
			Lines:   linediff.Diff(mb.Lines(), nil, context),
		}
	default:
		return models.DiffRecord{
			HeaderA: "--- a/" + label,
			HeaderB: "+++ b/" + label,
			Lines:   linediff.Diff(mb.Lines(), ma.Lines(), context),
		}
	}
}

func sheetRecord(name string, e reconcile.Entry, a, b *models.Workbook, context int) models.DiffRecord {
	label := name + "/" + e.Key
	sa, _ := a.Sheets.Get(e.Key)
	sb, _ := b.Sheets.Get(e.Key)

	rec := models.DiffRecord{
		HeaderA: "--- a/" + label,
		HeaderB: "+++ b/" + label,
		Lines:   linediff.Diff(sb.Rows, sa.Rows, context),
	}
	switch e.Status {
	case reconcile.Added:
		rec.HeaderA = "--- " + absentLabel
	case reconcile.Removed:
		rec.HeaderB = "+++ " + absentLabel
	}
	return rec
}
