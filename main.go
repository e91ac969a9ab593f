package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beka-birhanu/labyrinth-api/api"
	api_i "github.com/beka-birhanu/labyrinth-api/api/i"
	"github.com/beka-birhanu/labyrinth-api/api/identity"
	mazesapi "github.com/beka-birhanu/labyrinth-api/api/mazes"
	"github.com/beka-birhanu/labyrinth-api/config"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/repo"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/sortedstorage"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/token"
	"github.com/beka-birhanu/labyrinth-api/service"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	userRepo           i.UserRepo
	mazeRepo           i.MazeRepo
	leaderboard        i.Leaderboard
	jwtTokenizer       i.Tokenizer
	authService        i.Authenticator
	mazeSessionManager i.MazeSessionManager
	authController     api_i.Controller
	mazeController     api_i.Controller
	router             *api.Router
	appLogger          *log.Logger
)

func initLogger() {
	appLogger = log.New(os.Stdout, fmt.Sprintf("%s[APP]%s ", config.ColorGreen, config.ColorReset), log.LstdFlags)
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Failed to connect to MongoDB: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Printf("%s[ERROR]%s MongoDB ping failed: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Connected to MongoDB", config.LogInfoColor, config.LogColorReset)
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Printf("%s[ERROR]%s Redis ping failed: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Connected to Redis", config.LogInfoColor, config.LogColorReset)
}

func initRepos(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	mazeRepo = repo.NewMazeRepo(client, config.Envs.DBName, "mazes")
	appLogger.Printf("%s[INFO]%s Repositories initialized", config.LogInfoColor, config.LogColorReset)
}

func initLeaderboard() {
	var err error
	leaderboard, err = sortedstorage.NewRedisSortedBoard(redisClient, config.Envs.LeaderboardTTL, int64(config.Envs.LeaderboardMaxSize))
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Creating leaderboard: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Leaderboard initialized", config.LogInfoColor, config.LogColorReset)
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Printf("%s[INFO]%s JWT Tokenizer initialized", config.LogInfoColor, config.LogColorReset)
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Creating auth service: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Auth service initialized", config.LogInfoColor, config.LogColorReset)
}

func initMazeSessionManager() {
	sessionLogger := log.New(os.Stdout, fmt.Sprintf("%s[MAZE-SESSION]%s ", config.ColorCyan, config.ColorReset), log.LstdFlags)

	var err error
	mazeSessionManager, err = service.NewMazeSessionManager(&service.MazeSessionConfig{
		MazeRepo:     mazeRepo,
		UserRepo:     userRepo,
		Leaderboard:  leaderboard,
		MaxDimension: config.Envs.MaxMazeDimension,
		Logger:       sessionLogger,
	})
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Creating maze session manager: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Maze session manager initialized", config.LogInfoColor, config.LogColorReset)
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)

	var err error
	mazeController, err = mazesapi.NewMazeController(mazeSessionManager)
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Creating maze controller: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Controllers initialized", config.LogInfoColor, config.LogColorReset)
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Printf("%s[INFO]%s Router initialized", config.LogInfoColor, config.LogColorReset)
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	initLogger()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initRepos(mongoClient)
	initLeaderboard()
	initJWTTokenizer()
	initAuthService()
	initMazeSessionManager()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Printf("%s[ERROR]%s Starting server: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
}
