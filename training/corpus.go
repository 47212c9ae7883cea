package training

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Record is one row of the training corpus.
type Record struct {
	Addr            string
	Timestamp       string
	Locale          string
	ClaimedLocation string
	ThreatLevel     int
}

var corpusHeader = []string{"IP", "Time", "Accept-Language", "Location", "Threat Level"}

// LoadCorpus reads a training corpus from CSV. The header must match the
// expected columns exactly; a corpus with a different shape is rejected up
// front rather than producing a misaligned feature matrix later.
func LoadCorpus(r io.Reader) (records []Record, err error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		err = fmt.Errorf("error while reading corpus header: %w", err)
		return
	}

	if err = validateHeader(header); err != nil {
		return
	}

	for {
		var row []string
		row, err = reader.Read()
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			err = fmt.Errorf("error while reading corpus row: %w", err)
			return
		}

		var threatLevel int
		threatLevel, err = strconv.Atoi(row[4])
		if err != nil {
			err = fmt.Errorf("corpus row has non-integer threat level %q: %w", row[4], err)
			return
		}

		records = append(records, Record{
			Addr:            row[0],
			Timestamp:       row[1],
			Locale:          row[2],
			ClaimedLocation: row[3],
			ThreatLevel:     threatLevel,
		})
	}
}

func validateHeader(header []string) (err error) {
	if len(header) != len(corpusHeader) {
		err = fmt.Errorf("corpus header has %d columns, expected %d", len(header), len(corpusHeader))
		return
	}

	for i, name := range corpusHeader {
		if header[i] != name {
			err = fmt.Errorf("corpus header column %d is %q, expected %q", i, header[i], name)
			return
		}
	}

	return
}
