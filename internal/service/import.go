package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kweston/stridelog/internal/domain"
	"github.com/kweston/stridelog/internal/logger"
	"github.com/kweston/stridelog/internal/parser"
)

// RunCreator persists imported run records. Satisfied by *repository.RunRepository.
type RunCreator interface {
	Create(ctx context.Context, run *domain.Run) error
}

// ImportFile is one raw submitted file: content plus the name used for
// format dispatch.
type ImportFile struct {
	Name    string
	Content []byte
}

// ImportService drives batches of activity files through detection,
// parsing, and persistence.
type ImportService struct {
	runs        RunCreator
	logger      *logger.Logger
	maxFileSize int64
}

// ImportConfig holds configuration for the import service.
type ImportConfig struct {
	MaxFileSizeMB int
}

// NewImportService creates a new import service.
func NewImportService(runs RunCreator, log *logger.Logger, cfg *ImportConfig) *ImportService {
	maxSize := int64(25)
	if cfg != nil && cfg.MaxFileSizeMB > 0 {
		maxSize = int64(cfg.MaxFileSizeMB)
	}
	return &ImportService{
		runs:        runs,
		logger:      log,
		maxFileSize: maxSize * 1024 * 1024,
	}
}

// log returns a logger from context if available, otherwise returns the default logger
func (s *ImportService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// ImportFiles processes files strictly sequentially so that result order
// matches input order and a fault in one file is fully contained before
// the next begins. Every file yields exactly one ImportResult.
func (s *ImportService) ImportFiles(ctx context.Context, userID string, files []ImportFile) []domain.ImportResult {
	importID := uuid.New().String()
	ctx = logger.SetImportID(ctx, importID)

	start := time.Now()
	results := make([]domain.ImportResult, 0, len(files))
	succeeded := 0
	for _, file := range files {
		result := s.importFile(ctx, userID, file)
		if result.Success {
			succeeded++
		}
		results = append(results, result)
	}

	logger.With(logger.Fields{
		logger.FieldCount:      len(files),
		logger.FieldStatus:     fmt.Sprintf("%d/%d succeeded", succeeded, len(files)),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info(ctx, "Import batch completed")

	return results
}

// ImportPaths reads files from disk and imports them as one batch. A read
// failure yields a failed result for that file only; the rest of the
// batch proceeds.
func (s *ImportService) ImportPaths(ctx context.Context, userID string, paths []string) []domain.ImportResult {
	ctx = logger.SetImportID(ctx, uuid.New().String())

	results := make([]domain.ImportResult, 0, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)
		content, err := os.ReadFile(path)
		if err != nil {
			results = append(results, domain.ImportResult{
				FileName: name,
				Message:  fmt.Sprintf("Failed to read file: %v", err),
			})
			continue
		}
		results = append(results, s.importFile(ctx, userID, ImportFile{Name: name, Content: content}))
	}
	return results
}

// importFile handles a single file, converting every failure mode into a
// failed ImportResult. A panic in a parser must not take down the batch.
func (s *ImportService) importFile(ctx context.Context, userID string, file ImportFile) (result domain.ImportResult) {
	result = domain.ImportResult{FileName: file.Name}
	defer func() {
		if r := recover(); r != nil {
			s.log(ctx).WithFields(logger.Fields{
				logger.FieldFile: file.Name,
			}).Errorf("Recovered from panic while importing file: %v", r)
			result.Success = false
			result.Message = fmt.Sprintf("Internal error while processing file: %v", r)
		}
	}()

	if int64(len(file.Content)) > s.maxFileSize {
		result.Message = fmt.Sprintf("File exceeds the %d MB size limit", s.maxFileSize/(1024*1024))
		return result
	}

	format := parser.DetectFormat(file.Name, file.Content)
	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldFile:   file.Name,
		logger.FieldFormat: string(format),
	})

	switch format {
	case parser.FormatFIT:
		result.Message = "FIT files are not supported. Use your watch's TCX or GPX export instead."
	case parser.FormatUnknown:
		result.Message = "Unsupported file format. Supported formats: TCX, GPX, CSV."
	case parser.FormatCSV:
		result = s.importCSV(ctx, userID, file)
	case parser.FormatTCX:
		result = s.importSingle(ctx, userID, file, parser.ParseTCX)
	case parser.FormatGPX:
		result = s.importSingle(ctx, userID, file, parser.ParseGPX)
	}
	return result
}

// importCSV persists each parsed row individually; one bad record never
// aborts the rest of the file.
func (s *ImportService) importCSV(ctx context.Context, userID string, file ImportFile) domain.ImportResult {
	result := domain.ImportResult{FileName: file.Name}

	records, err := parser.ParseCSV(file.Content)
	if err != nil {
		result.Message = err.Error()
		return result
	}
	if len(records) == 0 {
		result.Message = "No valid run data found in file"
		return result
	}

	for _, record := range records {
		run := runFromParsed(userID, &record)
		if err := s.runs.Create(ctx, run); err != nil {
			s.log(ctx).WithError(err).Warn("Failed to persist imported run")
			result.RunsFailed++
			continue
		}
		result.RunsImported++
	}

	result.Success = result.RunsImported > 0
	if result.RunsFailed > 0 {
		result.Message = fmt.Sprintf("Imported %d runs successfully, %d failed", result.RunsImported, result.RunsFailed)
	} else {
		result.Message = fmt.Sprintf("Imported %d runs successfully", result.RunsImported)
	}
	return result
}

// importSingle handles the one-run-per-file formats (TCX, GPX).
func (s *ImportService) importSingle(ctx context.Context, userID string, file ImportFile, parse func([]byte) (*parser.ParsedRun, error)) domain.ImportResult {
	result := domain.ImportResult{FileName: file.Name}

	record, err := parse(file.Content)
	if err != nil {
		result.Message = err.Error()
		return result
	}

	run := runFromParsed(userID, record)
	if err := s.runs.Create(ctx, run); err != nil {
		s.log(ctx).WithError(err).Error("Failed to persist imported run")
		result.Message = fmt.Sprintf("Failed to save run: %v", err)
		return result
	}

	result.Success = true
	result.RunsImported = 1
	result.Message = fmt.Sprintf("Imported %.2f mile run from %s", run.DistanceMiles, run.Date.Format("Jan 2, 2006"))
	return result
}

// runFromParsed converts a normalized parser record into a run ready for
// persistence.
func runFromParsed(userID string, record *parser.ParsedRun) *domain.Run {
	now := time.Now()
	return &domain.Run{
		ID:              uuid.New().String(),
		UserID:          userID,
		Date:            record.Date,
		DistanceMiles:   record.DistanceMiles,
		DurationMinutes: record.DurationMinutes,
		PaceMinPerMile:  record.PaceMinPerMile,
		Route:           record.Route,
		Notes:           record.Notes,
		FeelingRating:   record.FeelingRating,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
