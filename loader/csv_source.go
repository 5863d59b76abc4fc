package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

const byteOrderMark = "\ufeff"

type csvSource struct {
	file   *os.File
	reader *csv.Reader
	header []string
}

func openCSVSource(filepath string) (*csvSource, error) {
	dataFile, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", filepath, err)
	}

	reader := csv.NewReader(dataFile)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		_ = dataFile.Close()
		return nil, fmt.Errorf("error reading header of %s: %w", filepath, err)
	}

	// the header slice is reused by the reader, keep a copy
	headerCopy := make([]string, len(header))
	copy(headerCopy, header)
	if len(headerCopy) > 0 {
		headerCopy[0] = strings.TrimPrefix(headerCopy[0], byteOrderMark)
	}

	return &csvSource{
		file:   dataFile,
		reader: reader,
		header: headerCopy,
	}, nil
}

func (cs *csvSource) Header() []string {
	return cs.header
}

func (cs *csvSource) Next() ([]string, error) {
	return cs.reader.Read()
}

func (cs *csvSource) Close() error {
	return cs.file.Close()
}
