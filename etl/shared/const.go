package shared

const (
	//StatusOk ok status
	StatusOk = "ok"
	//StatusError error status
	StatusError = "error"
	//StatusDone done status
	StatusDone = "done"
	//StatusRunning transfer running status
	StatusRunning = "running"

	//ModeDirect transfers windows straight off the source table
	ModeDirect = "direct"
	//ModeSplit materializes snapshot segments before transferring
	ModeSplit = "split"

	//SegmentInfix separates the source table name from the segment number
	SegmentInfix = "_seg_"

	//DefaultBatchSize default rows per transfer window
	DefaultBatchSize = 10000
	//DefaultWorkers default worker pool size
	DefaultWorkers = 4
	//DefaultSplits default segment count in split mode
	DefaultSplits = 10
	//DefaultInternalSchema default schema holding snapshot segments
	DefaultInternalSchema = "etl_internal"
)
