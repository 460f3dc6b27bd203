package ports

type MineMetrics interface {
	RecordNotification(n Notification)
	RecordConflict()
	RecordFailure()
}
