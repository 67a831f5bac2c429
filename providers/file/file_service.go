package file

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"gitlab.com/aoterocom/AOBacktester/models"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{"openTime", "closeTime", "open", "high", "low", "close", "volume"}

type candleFile struct {
	Candles []models.Candle `json:"candles"`
}

// FileService serves candles from a JSON or CSV file. The format is chosen
// by extension.
type FileService struct {
	path string
}

func NewFileService(path string) *FileService {
	return &FileService{path: path}
}

// GetCandles ignores symbol and interval: the file holds a single series.
func (fs *FileService) GetCandles(ctx context.Context, symbol string, interval string, from time.Time, to time.Time) ([]models.Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	candles, err := ReadCandles(fs.path)
	if err != nil {
		return nil, err
	}
	return FilterByTime(candles, from, to), nil
}

// FilterByTime keeps candles whose closeTime falls in [from, to). Zero
// bounds are open.
func FilterByTime(candles []models.Candle, from time.Time, to time.Time) []models.Candle {
	start := int64(0)
	if !from.IsZero() {
		start = from.UnixMilli()
	}
	if to.IsZero() {
		return candles[models.LowerBound(candles, start):]
	}
	return models.SliceByTime(candles, start, to.UnixMilli())
}

// ReadCandles loads and validates a candle file.
func ReadCandles(path string) ([]models.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening candle file: %w", err)
	}
	defer f.Close()

	var candles []models.Candle
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		candles, err = DecodeCSV(f)
	} else {
		candles, err = DecodeJSON(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := models.ValidateSeries(candles); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return candles, nil
}

func DecodeJSON(r io.Reader) ([]models.Candle, error) {
	var file candleFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding candles: %w", err)
	}
	return file.Candles, nil
}

func DecodeCSV(r io.Reader) ([]models.Candle, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decoding candles: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if records[0][0] == csvHeader[0] {
		records = records[1:]
	}

	candles := make([]models.Candle, len(records))
	for i, record := range records {
		c := &candles[i]
		if c.OpenTime, err = strconv.ParseInt(record[0], 10, 64); err != nil {
			return nil, fmt.Errorf("row %d openTime: %w", i+1, err)
		}
		if c.CloseTime, err = strconv.ParseInt(record[1], 10, 64); err != nil {
			return nil, fmt.Errorf("row %d closeTime: %w", i+1, err)
		}
		for j, dest := range []*float64{&c.Open, &c.High, &c.Low, &c.Close, &c.Volume} {
			if *dest, err = strconv.ParseFloat(record[j+2], 64); err != nil {
				return nil, fmt.Errorf("row %d %s: %w", i+1, csvHeader[j+2], err)
			}
		}
	}
	return candles, nil
}

// WriteJSON stores candles in the format DecodeJSON reads.
func WriteJSON(path string, candles []models.Candle) error {
	data, err := json.MarshalIndent(candleFile{Candles: candles}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding candles: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing candle file: %w", err)
	}
	return nil
}
