package outbound

// TaskDispatcher abstracts the worker pool so services never spawn goroutines
// directly. Submit returns an error when the pool rejects the task.
type TaskDispatcher interface {
	Submit(task func()) error
}
