package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileHolidays implements HolidaySource using a local text file
type FileHolidays struct {
	filePath string
	logger   *zap.Logger
	data     map[int][]Holiday // key: year
}

// NewFileHolidays creates a new FileHolidays instance
func NewFileHolidays(filePath string, logger *zap.Logger) *FileHolidays {
	return &FileHolidays{
		filePath: filePath,
		logger:   logger,
		data:     make(map[int][]Holiday),
	}
}

// Load loads holiday data from file
func (fh *FileHolidays) Load() error {
	file, err := os.Open(fh.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	if err := fh.parse(file); err != nil {
		return err
	}

	fh.logger.Info("Holiday file loaded",
		zap.String("file", fh.filePath),
		zap.Int("years", len(fh.data)))

	return nil
}

// parse reads lines of the form:
//
//	YYYY-MM-DD description
//	2025-01-01 Yılbaşı
func (fh *FileHolidays) parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, " ", 2)
		dateStr := parts[0]
		description := ""
		if len(parts) == 2 {
			description = strings.TrimSpace(parts[1])
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			fh.logger.Warn("Failed to parse date", zap.String("line", line), zap.Error(err))
			continue
		}

		fh.data[date.Year()] = append(fh.data[date.Year()], Holiday{
			Date:        dateStr,
			Description: description,
		})
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}
	return nil
}

// Holidays returns the holidays listed for the year
func (fh *FileHolidays) Holidays(year int) ([]Holiday, error) {
	holidays, ok := fh.data[year]
	if !ok {
		return nil, fmt.Errorf("%s: %w %d", fh.filePath, ErrYearNotCovered, year)
	}
	return holidays, nil
}
