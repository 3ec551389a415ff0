// Package extractor turns an uploaded spreadsheet into validated product records.
package extractor

import (
	"bytes"
	"context"
	"io"
	"os"

	"prodstats/adapters/datareadiness/coercer"
	"prodstats/adapters/excel"
	"prodstats/domain/core"
	"prodstats/domain/product"
	"prodstats/internal"
	apperrors "prodstats/internal/errors"
	"prodstats/internal/metrics"
)

// Extractor reads uploads and validates their rows into product records
type Extractor struct {
	config  excel.ExcelConfig
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
	metrics *metrics.Recorder
}

// Option configures an Extractor
type Option func(*Extractor)

// WithLogger sets the logger used for extraction progress
func WithLogger(logger *internal.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithMetrics records extraction outcomes on m
func WithMetrics(m *metrics.Recorder) Option {
	return func(e *Extractor) {
		e.metrics = m
	}
}

// New creates an Extractor. A non-positive MaxFileSize falls back to 10MB.
func New(config excel.ExcelConfig, opts ...Option) *Extractor {
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = excel.DefaultMaxFileSize
	}
	e := &Extractor{
		config:  config,
		coercer: coercer.NewTypeCoercer(config.CoercionConfig),
		logger:  internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("Extractor")
	return e
}

// Result is an extraction outcome along with what was learned about the file
type Result struct {
	Records  []product.Record
	Format   string
	Headers  []string
	Extended bool // sheet carries the Date column
	Checksum core.Hash
	Size     int64
}

// Extract reads r in full and returns the validated records in row order.
func (e *Extractor) Extract(ctx context.Context, name string, r io.Reader) ([]product.Record, error) {
	res, err := e.ExtractResult(ctx, name, r)
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

// ExtractFile opens path and extracts it
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.FileRead(err)
	}
	defer f.Close()
	return e.ExtractResult(ctx, path, f)
}

// ExtractResult is Extract with file metadata attached to the result.
func (e *Extractor) ExtractResult(ctx context.Context, name string, r io.Reader) (*Result, error) {
	data, err := e.readAll(r)
	if err != nil {
		e.metrics.RecordExtractionError("unknown", apperrors.GetCode(err))
		return nil, err
	}
	return e.ExtractBytes(ctx, name, data)
}

// ExtractBytes validates an upload already held in memory
func (e *Extractor) ExtractBytes(ctx context.Context, name string, data []byte) (*Result, error) {
	timer := metrics.NewTimer()

	if int64(len(data)) > e.config.MaxFileSize {
		err := apperrors.FileTooLarge(e.config.MaxFileSize)
		e.metrics.RecordExtractionError("unknown", err.Code)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.FileRead(err)
	}

	sheet, err := excel.NewDataReader(name, e.logger).ReadData(data)
	if err != nil {
		return nil, e.fail(name, "unknown", err)
	}

	records, err := e.buildRecords(sheet)
	if err != nil {
		return nil, e.fail(name, sheet.Format, err)
	}

	res := &Result{
		Records:  records,
		Format:   sheet.Format,
		Headers:  sheet.Headers,
		Extended: sheet.HasHeader(product.HeaderDate),
		Checksum: core.NewHash(data),
		Size:     int64(len(data)),
	}
	e.metrics.RecordExtraction(sheet.Format, len(records), res.Size, timer.Duration())
	e.logger.Info("Extracted %d records from %s (%s, checksum %s)", len(records), name, sheet.Format, res.Checksum.Short())
	return res, nil
}

func (e *Extractor) fail(name, format string, cause error) error {
	err := apperrors.ParseFailure(cause)
	e.metrics.RecordExtractionError(format, err.Code)
	e.logger.Warn("Rejected %s: %v", name, err)
	return err
}

// readAll reads at most one byte past the cap so oversized input is
// detected without buffering all of it.
func (e *Extractor) readAll(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, e.config.MaxFileSize+1))
	if err != nil {
		return nil, apperrors.FileRead(err)
	}
	if n > e.config.MaxFileSize {
		return nil, apperrors.FileTooLarge(e.config.MaxFileSize)
	}
	return buf.Bytes(), nil
}

// buildRecords validates rows in order. A non-numeric Price or Sell fails on
// the row it appears in; negative values are only reported after every row
// has been read, price before sell.
func (e *Extractor) buildRecords(sheet *excel.ExcelData) ([]product.Record, error) {
	if len(sheet.Rows) == 0 {
		return nil, core.ErrNoData
	}

	records := make([]product.Record, 0, len(sheet.Rows))
	for i, row := range sheet.Rows {
		rec, err := e.buildRecord(row, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	for _, rec := range records {
		if rec.Price < 0 {
			return nil, core.NewNegativeValueError("price")
		}
	}
	for _, rec := range records {
		if rec.Sell < 0 {
			return nil, core.NewNegativeValueError("sell")
		}
	}
	return records, nil
}

func (e *Extractor) buildRecord(row excel.RawRowData, rowNum int) (product.Record, error) {
	price, ok := e.coercer.Number(row.Get(product.HeaderPrice))
	if !ok {
		return product.Record{}, core.NewRowValueError("price", rowNum)
	}
	sell, ok := e.coercer.Number(row.Get(product.HeaderSell))
	if !ok {
		return product.Record{}, core.NewRowValueError("sell", rowNum)
	}

	text := func(header string) string {
		return e.coercer.CleanString(row.Get(header))
	}

	rec := product.Record{
		Order:               text(product.HeaderOrder),
		Style:               text(product.HeaderStyle),
		Fit:                 text(product.HeaderFit),
		Type:                text(product.HeaderType),
		PantType:            text(product.HeaderPantType),
		Material:            text(product.HeaderMaterial),
		MaterialComposition: text(product.HeaderMaterialComposition),
		Price:               price,
		Sell:                sell,
		Color:               text(product.HeaderColor),
		Seller:              text(product.HeaderSeller),
		Size:                text(product.HeaderSize),
		ID:                  text(product.HeaderID),
		Link:                text(product.HeaderLink),
	}
	if date, ok := e.coercer.Timestamp(row.Get(product.HeaderDate)); ok {
		rec.Date = date
	} else if raw, present := row.Get(product.HeaderDate); present {
		e.logger.Debug("Row %d: unparseable date %q left empty", rowNum, raw)
	}
	return rec, nil
}
