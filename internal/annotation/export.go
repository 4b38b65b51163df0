package annotation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"lente/internal/compare"
	"lente/internal/errs"
	"lente/internal/records"
)

const (
	// DefaultPageSize bounds pair objects per file on the general export path.
	DefaultPageSize = 100
	// DefaultBulkBatchSize chunks snapshot building for large pair lists.
	DefaultBulkBatchSize = 5000
	// DefaultNegativeMax caps how many negative pairs are exported.
	DefaultNegativeMax = 1000

	lockFileName = ".annotation.lock"
)

// Exporter writes classified pair lists as paginated annotation files.
type Exporter struct {
	// Dir is the annotation directory; created when missing.
	Dir string
	// Left holds the left-side records. Right is nil for deduplication, in
	// which case both sides of every pair resolve against Left.
	Left  *records.Table
	Right *records.Table
	// LeftFields and RightFields select the snapshot columns. Empty selects
	// every field.
	LeftFields  []string
	RightFields []string
	// Matrix, when set, supplies the aggregate score snapshot per pair.
	Matrix *compare.Matrix
	// PageSize bounds pair objects per file; 0 means DefaultPageSize.
	PageSize int
	// BulkBatchSize chunks snapshot construction; 0 means DefaultBulkBatchSize.
	BulkBatchSize int
	// NegativeMax caps exported negative pairs; 0 means DefaultNegativeMax.
	NegativeMax int
	// Overwrite permits replacing existing annotation files. Without it the
	// export fails before writing anything.
	Overwrite bool
}

// ExportForReview writes an unclassified pair list as PAIRS_<n>.json pages
// for manual annotation.
func (e *Exporter) ExportForReview(pairs []records.Pair) error {
	objects, err := e.buildObjects(pairs, ClassificationNone, 0)
	if err != nil {
		return err
	}
	return e.writePaginated("PAIRS", objects)
}

// ExportClassified writes the positive, potential, and negative pair lists as
// <CLASS>_PAIRS_<n>.json pages. Negative pairs are capped at NegativeMax.
func (e *Exporter) ExportClassified(positive, potential, negative []records.Pair) error {
	negativeMax := e.NegativeMax
	if negativeMax <= 0 {
		negativeMax = DefaultNegativeMax
	}

	positiveObjects, err := e.buildObjects(positive, ClassificationPositive, 0)
	if err != nil {
		return err
	}
	potentialObjects, err := e.buildObjects(potential, ClassificationPotential, 0)
	if err != nil {
		return err
	}
	negativeObjects, err := e.buildObjects(negative, ClassificationNegative, negativeMax)
	if err != nil {
		return err
	}

	groups := []struct {
		prefix  string
		objects []PairObject
	}{
		{"POSITIVE_PAIRS", positiveObjects},
		{"POTENTIAL_PAIRS", potentialObjects},
		{"NEGATIVE_PAIRS", negativeObjects},
	}
	for _, group := range groups {
		if err := e.writePaginated(group.prefix, group.objects); err != nil {
			return err
		}
	}
	return nil
}

// buildObjects renders pair objects in chunks to bound memory on large lists.
// maxRecords of 0 means unlimited.
func (e *Exporter) buildObjects(pairs []records.Pair, classification Classification, maxRecords int) ([]PairObject, error) {
	if e.Left == nil {
		return nil, errs.Wrap(errs.ErrConfiguration, "annotation", "export", "left record table is required", nil)
	}
	right := e.Right
	if right == nil {
		right = e.Left
	}

	if maxRecords > 0 && len(pairs) > maxRecords {
		pairs = pairs[:maxRecords]
	}

	chunk := e.BulkBatchSize
	if chunk <= 0 {
		chunk = DefaultBulkBatchSize
	}

	aggIndex := e.aggIndex()

	objects := make([]PairObject, 0, len(pairs))
	cod := 0
	for start := 0; start < len(pairs); start += chunk {
		end := start + chunk
		if end > len(pairs) {
			end = len(pairs)
		}
		for _, pair := range pairs[start:end] {
			if !e.Left.Has(pair.Left) {
				return nil, errs.Wrap(errs.ErrData, "annotation", "export",
					fmt.Sprintf("pair references unknown left record %q", pair.Left), nil)
			}
			if !right.Has(pair.Right) {
				return nil, errs.Wrap(errs.ErrData, "annotation", "export",
					fmt.Sprintf("pair references unknown right record %q", pair.Right), nil)
			}
			cod++
			objects = append(objects, PairObject{
				Cod:            cod,
				Classification: classification,
				A:              e.Left.Snapshot(pair.Left, e.LeftFields),
				B:              right.Snapshot(pair.Right, e.RightFields),
				Identifiers:    Identifiers{A: pair.Left, B: pair.Right},
				Agg:            e.aggSnapshot(aggIndex, pair),
			})
		}
	}
	return objects, nil
}

func (e *Exporter) aggIndex() map[records.Pair]int {
	if e.Matrix == nil {
		return nil
	}
	index := make(map[records.Pair]int, e.Matrix.Len())
	for i := 0; i < e.Matrix.Len(); i++ {
		index[e.Matrix.PairAt(i)] = i
	}
	return index
}

// aggSnapshot renders the matrix row for a pair. Not-computed sentinels
// become JSON null; pairs absent from the matrix get a null agg.
func (e *Exporter) aggSnapshot(index map[records.Pair]int, pair records.Pair) map[string]any {
	if index == nil {
		return nil
	}
	i, ok := index[pair]
	if !ok {
		return nil
	}
	labels := e.Matrix.Labels()
	row := e.Matrix.Row(i)
	out := make(map[string]any, len(labels))
	for j, label := range labels {
		if compare.IsMissing(row[j]) {
			out[label] = nil
			continue
		}
		out[label] = row[j]
	}
	return out
}

// writePaginated splits objects into pages and writes <prefix>_<n>.json
// files. All target paths are checked before anything is written so a refused
// overwrite leaves the directory untouched.
func (e *Exporter) writePaginated(prefix string, objects []PairObject) error {
	if e.Dir == "" {
		return errs.Wrap(errs.ErrConfiguration, "annotation", "export", "no annotation directory was provided", nil)
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return errs.Wrap(errs.ErrResource, "annotation", "export", "create annotation directory", err)
	}

	lock := flock.New(filepath.Join(e.Dir, lockFileName))
	if err := lock.Lock(); err != nil {
		return errs.Wrap(errs.ErrResource, "annotation", "export", "lock annotation directory", err)
	}
	defer func() { _ = lock.Unlock() }()

	pageSize := e.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var pages []Payload
	for start := 0; start < len(objects); start += pageSize {
		end := start + pageSize
		if end > len(objects) {
			end = len(objects)
		}
		pages = append(pages, Payload{Pairs: objects[start:end]})
	}
	if len(pages) == 0 {
		pages = []Payload{{Pairs: []PairObject{}}}
	}

	if !e.Overwrite {
		for index := range pages {
			path := pagePath(e.Dir, prefix, index)
			if _, err := os.Stat(path); err == nil {
				return errs.Wrap(errs.ErrResource, "annotation", "export",
					fmt.Sprintf("refusing to overwrite %s without the override flag", filepath.Base(path)), nil)
			}
		}
	}

	for index, page := range pages {
		data, err := json.MarshalIndent(page, "", "    ")
		if err != nil {
			return errs.Wrap(errs.ErrResource, "annotation", "export", "encode annotation page", err)
		}
		if err := os.WriteFile(pagePath(e.Dir, prefix, index), data, 0o644); err != nil {
			return errs.Wrap(errs.ErrResource, "annotation", "export", "write annotation page", err)
		}
	}
	return nil
}

func pagePath(dir, prefix string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%d.json", prefix, index))
}
