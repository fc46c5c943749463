package main

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/fatih/color"
)

type ReportRow struct {
	Table                     string
	Column                    string
	UncompressedSize          uint64
	Rows                      uint64
	RowsNotEmpty              uint64
	Algorithm                 string
	CompressedSize            uint64
	CompressionTimeMs         float64
	DecompressionTimeMsFull   float64
	DecompressionTimeMsVector float64
	DecompressionTimeMsRandom float64
}

type AlgorithmSummary struct {
	Algorithm                   string
	Columns                     int
	UncompressedSize            uint64
	CompressedSize              uint64
	MeanCompressionTimeMs       float64
	MeanDecompressionTimeMsFull float64
}

func (s AlgorithmSummary) Ratio() float64 {
	if s.CompressedSize == 0 {
		return 0
	}
	return float64(s.UncompressedSize) / float64(s.CompressedSize)
}

var reportColumns = []string{
	"table",
	"column",
	"uncompressed_size",
	"n_rows",
	"n_rows_not_empty",
	"algorithm",
	"compressed_size",
	"compression_time_ms",
	"decompression_time_ms_full",
	"decompression_time_ms_vector",
	"decompression_time_ms_random",
}

func ReadReport(path string) ([]ReportRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	rows, err := ParseReport(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report %v: %w", path, err)
	}
	return rows, nil
}

func ParseReport(r io.Reader) ([]ReportRow, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty report")
	} else if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range reportColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	rows := make([]ReportRow, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		p := fieldParser{record: record, index: index}
		row := ReportRow{
			Table:                     p.str("table"),
			Column:                    p.str("column"),
			UncompressedSize:          p.uint("uncompressed_size"),
			Rows:                      p.uint("n_rows"),
			RowsNotEmpty:              p.uint("n_rows_not_empty"),
			Algorithm:                 p.str("algorithm"),
			CompressedSize:            p.uint("compressed_size"),
			CompressionTimeMs:         p.float("compression_time_ms"),
			DecompressionTimeMsFull:   p.float("decompression_time_ms_full"),
			DecompressionTimeMsVector: p.float("decompression_time_ms_vector"),
			DecompressionTimeMsRandom: p.float("decompression_time_ms_random"),
		}
		if p.err != nil {
			return nil, fmt.Errorf("line %v: %w", line, p.err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type fieldParser struct {
	record []string
	index  map[string]int
	err    error
}

func (p *fieldParser) str(name string) string {
	return p.record[p.index[name]]
}

func (p *fieldParser) uint(name string) uint64 {
	value, err := strconv.ParseUint(p.str(name), 10, 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %v: %w", name, err)
	}
	return value
}

func (p *fieldParser) float(name string) float64 {
	value, err := strconv.ParseFloat(p.str(name), 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %v: %w", name, err)
	}
	return value
}

// Summarize aggregates report rows per algorithm, best compression ratio first.
func Summarize(rows []ReportRow) []AlgorithmSummary {
	byAlgorithm := make(map[string]*AlgorithmSummary)
	for _, row := range rows {
		summary, ok := byAlgorithm[row.Algorithm]
		if !ok {
			summary = &AlgorithmSummary{Algorithm: row.Algorithm}
			byAlgorithm[row.Algorithm] = summary
		}
		summary.Columns++
		summary.UncompressedSize += row.UncompressedSize
		summary.CompressedSize += row.CompressedSize
		summary.MeanCompressionTimeMs += row.CompressionTimeMs
		summary.MeanDecompressionTimeMsFull += row.DecompressionTimeMsFull
	}
	summaries := make([]AlgorithmSummary, 0, len(byAlgorithm))
	for _, summary := range byAlgorithm {
		summary.MeanCompressionTimeMs /= float64(summary.Columns)
		summary.MeanDecompressionTimeMsFull /= float64(summary.Columns)
		summaries = append(summaries, *summary)
	}
	slices.SortFunc(summaries, func(a, b AlgorithmSummary) int {
		if c := cmp.Compare(b.Ratio(), a.Ratio()); c != 0 {
			return c
		}
		return cmp.Compare(a.Algorithm, b.Algorithm)
	})
	return summaries
}

func PrintSummary(w io.Writer, summaries []AlgorithmSummary) {
	for _, s := range summaries {
		fmt.Fprintf(w, "  %-14s %s  %v -> %v bytes  compression: %s  decompression: %s  %s\n",
			color.CyanString(s.Algorithm),
			color.GreenString("%6.2fx", s.Ratio()),
			s.UncompressedSize,
			s.CompressedSize,
			color.YellowString("%.3f ms", s.MeanCompressionTimeMs),
			color.YellowString("%.3f ms", s.MeanDecompressionTimeMsFull),
			color.HiBlackString("%d columns", s.Columns),
		)
	}
}
