package apperrors

import (
	"net/http"
)

/*
Фабрики для ошибок бизнес-логики и загрузки файлов.
Каждый вызов возвращает новый *AppError, поэтому WithDetails безопасен
для конкурентных запросов.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrPortfolioNotFound - портфолио отсутствует (или было удалено во время запроса).
func ErrPortfolioNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "portfolio", "Portfolio not found", http.StatusNotFound)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// DatabaseError - сбой фиксации в хранилище записей (PersistenceError).
func DatabaseError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "database", "Failed to persist changes", http.StatusInternalServerError)
}

// StorageError - сбой записи в blob-хранилище.
func StorageError(err error) *AppError {
	return Wrap(err, CodeStorageError, "storage", "Failed to store uploaded file", http.StatusBadGateway)
}

// --- Auth ---

func ErrInvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "auth", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken(err error) *AppError {
	return Wrap(err, CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)
}

// --- Uploads & Files ---

// ErrNoFilesProvided - в запросе нет ни одного файла.
func ErrNoFilesProvided() *AppError {
	return New(CodeValidationFailed, "upload", "No files uploaded", http.StatusBadRequest)
}

// ErrTooManyFiles - превышен лимит файлов на один запрос.
func ErrTooManyFiles(limit int) *AppError {
	return New(CodeLimitExceeded, "upload", "Too many files in one request", http.StatusBadRequest).
		WithDetails(map[string]int{"maxFiles": limit})
}

// ErrFileTooLarge - файл превышает максимальный размер.
func ErrFileTooLarge() *AppError {
	return New(CodeLimitExceeded, "upload", "File size exceeds the allowed limit", http.StatusRequestEntityTooLarge)
}

// ErrUnsupportedMediaType - MIME-тип не image/* и не video/*.
func ErrUnsupportedMediaType() *AppError {
	return New(CodeUnsupportedMediaType, "upload", "Only image or video uploads are allowed", http.StatusUnsupportedMediaType)
}

// ErrDisallowedExtension - расширение файла вне списка разрешенных.
func ErrDisallowedExtension() *AppError {
	return New(CodeDisallowedExtension, "upload", "File extension is not allowed", http.StatusBadRequest)
}
