package config

// Color constants for component loggers
const (
	ColorGreen = "\033[32m"
	ColorCyan  = "\033[36m"
)
