// Package importer reads the legacy subnet dataset: a semicolon-separated
// CSV with decimal commas ("2,75"), the format the original spreadsheet
// exports produced.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sherpa-labs/sherpa/internal/errors"
	"github.com/sherpa-labs/sherpa/internal/scoring"
	"github.com/sherpa-labs/sherpa/internal/store"
)

// Required columns of the legacy format. Netuid, Description and
// personal-notes are optional; rows without a Netuid are numbered in
// file order.
var requiredColumns = []string{"Name", "Service-Research", "Intelligence-Resource", "custom-eval"}

// Parse reads the CSV and returns catalog entries. The header row is
// mandatory; every data row must parse completely, a single bad cell
// fails the whole import rather than silently dropping a subnet.
func Parse(r io.Reader) ([]store.Subnet, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewValidationError("empty CSV file")
	}
	if err != nil {
		return nil, errors.NewValidationError("failed to read CSV header", err.Error())
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("CSV is missing required column(s): %s", strings.Join(missing, ", ")))
	}

	var subnets []store.Subnet
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("failed to read CSV row %d", row+2), err.Error())
		}
		row++

		subnet, err := parseRow(record, cols, row)
		if err != nil {
			return nil, err
		}
		subnets = append(subnets, subnet)
	}

	if len(subnets) == 0 {
		return nil, errors.NewValidationError("CSV contains no data rows")
	}
	return subnets, nil
}

// Import parses the CSV and upserts every row into the catalog. Returns
// the number of imported subnets.
func Import(r io.Reader, repo *store.Repository) (int, error) {
	subnets, err := Parse(r)
	if err != nil {
		return 0, err
	}
	for i := range subnets {
		if err := repo.UpsertSubnet(&subnets[i]); err != nil {
			return 0, err
		}
	}
	return len(subnets), nil
}

func parseRow(record []string, cols map[string]int, row int) (store.Subnet, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := cell("Name")
	if name == "" {
		return store.Subnet{}, errors.NewValidationError(fmt.Sprintf("row %d has no Name", row+1))
	}

	netuid := row
	if raw := cell("Netuid"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return store.Subnet{}, errors.NewValidationError(
				fmt.Sprintf("row %d has invalid Netuid %q", row+1, raw))
		}
		netuid = n
	}

	serviceResearch, err := parseDecimal(cell("Service-Research"), "Service-Research", row)
	if err != nil {
		return store.Subnet{}, err
	}
	intelligenceResource, err := parseDecimal(cell("Intelligence-Resource"), "Intelligence-Resource", row)
	if err != nil {
		return store.Subnet{}, err
	}
	quality, err := parseDecimal(cell("custom-eval"), "custom-eval", row)
	if err != nil {
		return store.Subnet{}, err
	}

	return store.Subnet{
		Netuid:               netuid,
		Name:                 name,
		Description:          cell("Description"),
		Notes:                cell("personal-notes"),
		ServiceResearch:      &serviceResearch,
		IntelligenceResource: &intelligenceResource,
		Quality:              &quality,
		Quadrant:             scoring.Quadrant(serviceResearch, intelligenceResource),
	}, nil
}

// parseDecimal accepts both decimal commas and decimal points.
func parseDecimal(raw, column string, row int) (float64, error) {
	if raw == "" {
		return 0, errors.NewValidationError(fmt.Sprintf("row %d has empty %s", row+1, column))
	}
	v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("row %d has invalid %s value %q", row+1, column, raw))
	}
	return v, nil
}
