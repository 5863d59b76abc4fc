package loader

import (
	"context"
	"fmt"

	"bikeshare/config"
)

// rowSource iterates the rows of a tabular trip source. Next returns io.EOF after the last row.
type rowSource interface {
	Header() []string
	Next() ([]string, error)
	Close() error
}

func openSource(ctx context.Context, sourcePath string, cityConfig config.CityConfig) (rowSource, error) {
	switch cityConfig.Format {
	case config.FormatCSV, "":
		return openCSVSource(sourcePath)
	case config.FormatSQLite:
		return openSQLiteSource(ctx, sourcePath, cityConfig.Table)
	default:
		return nil, fmt.Errorf("unsupported source format %s", cityConfig.Format)
	}
}
