package repository

import (
	commitmentRepo "skischool/database/repository/commitment"
	monitorRepo "skischool/database/repository/monitor"
)

// Re-export the CommitmentRepository interface and constructor.
type CommitmentRepository = commitmentRepo.CommitmentRepository

var NewMongoCommitmentRepo = commitmentRepo.NewMongoCommitmentRepo

// Re-export the MonitorRepository interface and constructor.
type MonitorRepository = monitorRepo.MonitorRepository

type MonitorSearchCriteria = monitorRepo.MonitorSearchCriteria

var NewMongoMonitorRepo = monitorRepo.NewMongoMonitorRepo
