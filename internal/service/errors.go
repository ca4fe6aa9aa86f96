package service

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidBackupFormat = errors.New("invalid backup format")
	ErrUnreadableFile      = errors.New("backup file could not be read")
	ErrEmptyExportSet      = errors.New("no entries found for this period")
	ErrMissingEnergyInputs = errors.New("profile lacks age, height or weight for a calorie target")
)
