package config

// Default returns the repository default configuration. Paths are expanded
// during normalize.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: "~/.local/share/lente",
		},
		Matching: Matching{
			Window:          1,
			Batches:         1,
			ScoreThreshold:  0,
			StringAlgorithm: "damerau_levenshtein",
			RankLabels:      []string{"first_name_rank", "mother_first_name_rank"},
		},
		Annotation: Annotation{
			PageSize:      100,
			BulkBatchSize: 5000,
			NegativeMax:   1000,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
