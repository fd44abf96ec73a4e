package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	MaxSize             int    // Largest maze size accepted
	DefaultSize         int    // Maze size used when none is given on the command line
	Algorithm           string // Default generation algorithm (kruskal, eller)
	MergeProbability    int    // Eller horizontal merge percent
	VerticalProbability int    // Eller vertical connection percent
	RotateWorkers       int    // Rotation worker pool size
	Store               string // Maze store backend (file, redis, mongo)
	StoreDir            string // Directory used by the file store
	StoreTTLSeconds     int    // Expiry of redis maze keys, 0 for none
	RedisAddr           string // Address of the redis server
	RedisPassword       string // Password for the redis server
	RedisDB             int    // Redis logical database
	MongoURI            string // Connection string for MongoDB
	MongoDB             string // Name of the MongoDB database
	MongoCollection     string // Name of the maze collection
	LogLevel            string // Minimum log level
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[APP] [INFO] .env file could not be loaded: %v", err)
	}

	return Config{
		MaxSize:             getEnvAsIntWithDefault("MAZE_MAX_SIZE", 100),
		DefaultSize:         getEnvAsIntWithDefault("MAZE_DEFAULT_SIZE", 50),
		Algorithm:           getEnvWithDefault("MAZE_ALGORITHM", "kruskal"),
		MergeProbability:    getEnvAsIntWithDefault("MAZE_MERGE_PROBABILITY", 45),
		VerticalProbability: getEnvAsIntWithDefault("MAZE_VERTICAL_PROBABILITY", 45),
		RotateWorkers:       getEnvAsIntWithDefault("MAZE_ROTATE_WORKERS", 4),
		Store:               getEnvWithDefault("MAZE_STORE", "file"),
		StoreDir:            getEnvWithDefault("MAZE_STORE_DIR", "mazes"),
		StoreTTLSeconds:     getEnvAsIntWithDefault("MAZE_STORE_TTL", 0),
		RedisAddr:           getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:             getEnvAsIntWithDefault("REDIS_DB", 0),
		MongoURI:            getEnvWithDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:             getEnvWithDefault("MONGO_DB", "vinom"),
		MongoCollection:     getEnvWithDefault("MONGO_COLLECTION", "mazes"),
		LogLevel:            getEnvWithDefault("LOG_LEVEL", "info"),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an environment variable as an integer, falling back to the
// default when it is unset or cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[APP] [INFO] Environment variable %s must be an integer, using %d: %v", key, defaultValue, err)
		return defaultValue
	}
	return value
}
