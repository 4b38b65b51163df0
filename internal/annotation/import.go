package annotation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"lente/internal/errs"
)

// Import reads the positive and potential annotation pages from dir, in page
// order, and reconstructs the classification table. Negative pages are not
// read; negatives are only exported for audit.
func Import(dir string) ([]ClassifiedPair, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, errs.Wrap(errs.ErrResource, "annotation", "import", "annotation directory does not exist", err)
	}

	var out []ClassifiedPair
	for _, prefix := range []string{"POSITIVE_PAIRS", "POTENTIAL_PAIRS"} {
		pairs, err := readPages(dir, prefix)
		if err != nil {
			return nil, err
		}
		out = append(out, pairs...)
	}
	return out, nil
}

// readPages loads <prefix>_<n>.json files starting at page 0 until the next
// page is missing.
func readPages(dir, prefix string) ([]ClassifiedPair, error) {
	var out []ClassifiedPair
	for index := 0; ; index++ {
		path := pagePath(dir, prefix, index)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			if index == 0 {
				return nil, errs.Wrap(errs.ErrResource, "annotation", "import",
					fmt.Sprintf("missing %s_0.json", prefix), nil)
			}
			return out, nil
		}
		if err != nil {
			return nil, errs.Wrap(errs.ErrResource, "annotation", "import", "read annotation page", err)
		}

		var page Payload
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, errs.Wrap(errs.ErrData, "annotation", "import",
				fmt.Sprintf("parse %s", path), err)
		}
		for _, object := range page.Pairs {
			out = append(out, ClassifiedPair{
				Left:           object.Identifiers.A,
				Right:          object.Identifiers.B,
				Classification: object.Classification,
			})
		}
	}
}
