package jobs

import (
	"library-backend/internal/config"
	"library-backend/internal/logger"
	"library-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	directory service.DirectoryService
	accounts  *service.AccountManager
	config    *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(directory service.DirectoryService, accounts *service.AccountManager, cfg *config.Config) *JobRunner {
	return &JobRunner{
		directory: directory,
		accounts:  accounts,
		config:    cfg,
	}
}

// Config returns the loaded application configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
