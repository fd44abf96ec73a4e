package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/mazestore"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/pathfinding"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

var errUnknownStore = errors.New("unknown maze store")

// Global variables for dependencies
var (
	appLogger   *logger.Logger
	mazeStore   i.MazeStore
	redisClient *redis.Client
	mongoClient *mongo.Client
)

func initLogger(w io.Writer) error {
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, w)
	if err != nil {
		return err
	}
	if err := appLogger.SetLevel(config.Envs.LogLevel); err != nil {
		appLogger.Warning(fmt.Sprintf("Unknown log level %q, keeping info", config.Envs.LogLevel))
	}
	return nil
}

func initRedis(ctx context.Context) error {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		return err
	}
	appLogger.Info("Connected to Redis")
	return nil
}

func initMongo(ctx context.Context) error {
	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(config.Envs.MongoURI))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		return err
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		return err
	}
	appLogger.Info("Connected to MongoDB")
	return nil
}

// initStore connects the backend named by MAZE_STORE.
func initStore(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch strings.ToLower(config.Envs.Store) {
	case "file":
		store, err := mazestore.NewFileStore(config.Envs.StoreDir)
		if err != nil {
			appLogger.Error(fmt.Sprintf("Creating file store: %v", err))
			return err
		}
		mazeStore = store
	case "redis":
		if err := initRedis(ctx); err != nil {
			return err
		}
		mazeStore = mazestore.NewRedisStore(redisClient, config.Envs.StoreTTLSeconds)
	case "mongo":
		if err := initMongo(ctx); err != nil {
			return err
		}
		mazeStore = mazestore.NewMongoStore(mongoClient, config.Envs.MongoDB, config.Envs.MongoCollection)
	default:
		return fmt.Errorf("%w: %q", errUnknownStore, config.Envs.Store)
	}

	appLogger.Info(fmt.Sprintf("Maze store initialized (%s)", config.Envs.Store))
	return nil
}

func closeStore() {
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(context.Background())
	}
}

func newSession(algorithm maze.Algorithm, size int, seed int64, errWriter io.Writer) (*service.Session, error) {
	m, err := maze.NewWithAlgorithm(algorithm, size,
		maze.WithSeed(seed),
		maze.WithMaxSize(config.Envs.MaxSize),
		maze.WithMergeProbability(config.Envs.MergeProbability),
		maze.WithVerticalProbability(config.Envs.VerticalProbability),
		maze.WithRotateWorkers(config.Envs.RotateWorkers),
	)
	if err != nil {
		return nil, err
	}

	sessionLogger, err := logger.New("SESSION", config.ColorCyan, errWriter)
	if err != nil {
		return nil, err
	}
	_ = sessionLogger.SetLevel(config.Envs.LogLevel)

	cfg := service.SessionConfig{Maze: m, Store: mazeStore, Logger: sessionLogger}
	if seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(seed))
	}
	return service.NewSession(cfg)
}

// parseSize reads the optional positional size argument.
func parseSize(arg string) (int, error) {
	if arg == "" {
		return config.Envs.DefaultSize, nil
	}
	size, err := strconv.Atoi(arg)
	if err != nil || size <= 0 {
		return 0, fmt.Errorf("invalid maze size %q: want a positive integer", arg)
	}
	return size, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	if err := initLogger(cmd.ErrWriter); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	size, err := parseSize(cmd.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	algorithm, err := maze.ParseAlgorithm(cmd.String("algorithm"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	loadID := cmd.String("load")
	deleteID := cmd.String("delete")
	if cmd.Bool("save") || cmd.Bool("list") || loadID != "" || deleteID != "" {
		if err := initStore(ctx); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer closeStore()
	}

	if cmd.Bool("list") {
		return listMazes(ctx, cmd.Writer)
	}
	if deleteID != "" {
		return deleteMaze(ctx, deleteID)
	}

	session, err := newSession(algorithm, size, cmd.Int64("seed"), cmd.ErrWriter)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if loadID != "" {
		id, err := uuid.Parse(loadID)
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid maze id %q: %v", loadID, err), 1)
		}
		if err := session.Load(ctx, id); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	} else if err := session.Generate(algorithm); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if turns := cmd.Int("rotate"); turns != 0 {
		direction := maze.Clockwise
		if cmd.Bool("counterclockwise") {
			direction = maze.Counterclockwise
		}
		if err := session.Rotate(direction, turns); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	if cmd.Bool("print") {
		fmt.Fprint(cmd.Writer, session.String())
	}

	if name := cmd.String("solve"); name != "" {
		order, err := pathfinding.ParseOrder(name)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		path, err := session.Solve(order)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Fprintf(cmd.Writer, "%s from %v to %v: %d steps\n", order, session.Player(), session.Goal(), path.Edges())
		for _, p := range path {
			fmt.Fprintln(cmd.Writer, p)
		}
	}

	if cmd.Bool("save") {
		if err := session.Save(ctx); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Fprintln(cmd.Writer, session.ID())
	}
	return nil
}

func listMazes(ctx context.Context, w io.Writer) error {
	ids, err := mazeStore.List(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
	return nil
}

func deleteMaze(ctx context.Context, raw string) error {
	id, err := uuid.Parse(raw)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid maze id %q: %v", raw, err), 1)
	}
	if err := mazeStore.Delete(ctx, id); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	appLogger.Info(fmt.Sprintf("Deleted maze %s", id))
	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "vinom-maze",
		Usage:     "generate, rotate, solve and store perfect mazes",
		ArgsUsage: "[size]",
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "algorithm",
				Aliases: []string{"a"},
				Value:   config.Envs.Algorithm,
				Usage:   "generation algorithm: kruskal or eller",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "random seed, 0 draws one from the clock",
			},
			&cli.IntFlag{
				Name:  "rotate",
				Usage: "number of quarter turns to apply after generation",
			},
			&cli.BoolFlag{
				Name:  "counterclockwise",
				Usage: "rotate counterclockwise instead of clockwise",
			},
			&cli.StringFlag{
				Name:  "solve",
				Usage: "print a path from the player to the destination: bfs or dfs",
			},
			&cli.BoolFlag{
				Name:  "print",
				Value: true,
				Usage: "print the maze as ASCII art",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "save the maze to the configured store and print its id",
			},
			&cli.StringFlag{
				Name:  "load",
				Usage: "load the maze with this id instead of generating one",
			},
			&cli.StringFlag{
				Name:  "delete",
				Usage: "delete the stored maze with this id",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "list stored maze ids",
			},
		},
		Action: run,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
