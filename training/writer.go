package training

import (
	"encoding/csv"
	"io"
	"strconv"
)

const labelColumn = "Threat Level"

// WriteMatrixCSV writes the prepared feature matrix with its labels as CSV,
// one header row of schema column names plus the label column. This is the
// file the external model trainer consumes.
func WriteMatrixCSV(w io.Writer, prepared *Prepared) (err error) {
	writer := csv.NewWriter(w)

	header := append(append([]string{}, prepared.Artifacts.Schema...), labelColumn)
	if err = writer.Write(header); err != nil {
		return
	}

	for i, vector := range prepared.Matrix {
		row := make([]string, 0, len(vector)+1)
		for _, value := range vector {
			row = append(row, strconv.FormatFloat(value, 'g', -1, 64))
		}
		row = append(row, strconv.Itoa(prepared.Labels[i]))

		if err = writer.Write(row); err != nil {
			return
		}
	}

	writer.Flush()
	err = writer.Error()
	return
}
