package dirchecksums

// Generation labels, stored as the skiplist context of every record
const (
	CurrentGeneration = "current"
	LoadedGeneration  = "loaded"
)

// File constants
const (
	HashFileExt       = ".hash"
	DefaultConfigName = "config"
	ConfigDirName     = "dcsum"
)

// Defaults shared by the config layer and the CLI
const (
	DefaultAlgorithm  = "SHA1"
	DefaultHashBuffer = "64KiB"
	DefaultFormat     = "human"
	SentinelRune      = '-'
)

// Worker count sentinels
const (
	JobsAll       = 0  // one worker per logical CPU
	JobsUnbounded = -1 // one goroutine per file, no cap
)

// skiplistLevels is the level count used for every HashStore skiplist
const skiplistLevels = 16

// iovMax bounds the iovec count of a single writev call
const iovMax = 1024
