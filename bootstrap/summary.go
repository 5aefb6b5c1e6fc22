package bootstrap

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/kbukum/rddkit/logger"
)

// Step statuses tracked by the summary.
const (
	StepOK     = "ok"
	StepFailed = "failed"
)

// StepStatus holds the outcome of one unit of work run by the task.
type StepStatus struct {
	Name     string
	Status   string
	Records  int
	Duration time.Duration
}

// Summary tracks what a task run did and reports it when the task ends.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	taskDuration    time.Duration
	steps           []StepStatus
}

// NewSummary creates a new run summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		steps:       make([]StepStatus, 0),
	}
}

// SetStartupDuration records the time spent before the task started.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// SetTaskDuration records the time the task itself took.
func (s *Summary) SetTaskDuration(d time.Duration) {
	s.taskDuration = d
}

// TrackStep records the outcome of one step.
func (s *Summary) TrackStep(name, status string, records int, d time.Duration) {
	s.steps = append(s.steps, StepStatus{
		Name:     name,
		Status:   status,
		Records:  records,
		Duration: d,
	})
}

// Steps returns the tracked steps in order.
func (s *Summary) Steps() []StepStatus {
	return s.steps
}

// Failed reports how many tracked steps failed.
func (s *Summary) Failed() int {
	n := 0
	for _, st := range s.steps {
		if st.Status != StepOK {
			n++
		}
	}
	return n
}

// Display logs the summary: one line for the run and one per step.
func (s *Summary) Display(log *logger.Logger) {
	records := 0
	for _, st := range s.steps {
		records += st.Records
		fields := logger.Fields(
			"step", st.Name,
			logger.FieldStatus, st.Status,
			logger.FieldRecords, st.Records,
		)
		log.Debug("step finished", logger.MergeWithDuration(fields, st.Duration))
	}

	log.Info("run finished", logger.Fields(
		logger.FieldAppName, s.serviceName,
		"version", s.version,
		"steps", len(s.steps),
		"failed", s.Failed(),
		logger.FieldRecords, humanize.Comma(int64(records)),
		"startup", s.startupDuration.String(),
		"elapsed", s.taskDuration.String(),
	))
}
