package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/comet/pkg/config"
	"github.com/ajitpratap0/comet/pkg/connector"
	jsonpool "github.com/ajitpratap0/comet/pkg/json"
	"github.com/ajitpratap0/comet/pkg/logger"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	var (
		configFile     string
		storeHash      string
		accessToken    string
		clientID       string
		apiBaseURL     string
		maxConcurrency int
		maxRetries     int
		timeout        time.Duration
		logLevel       string
	)

	root := &cobra.Command{
		Use:   "comet",
		Short: "Comet - resilient store API connector",
		Long: `Comet issues authenticated CRUD requests against a store-scoped e-commerce
REST API and transparently retries requests the server throttles via rate limiting.`,
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to connector configuration YAML file")
	root.PersistentFlags().StringVar(&storeHash, "store-hash", os.Getenv("COMET_STORE_HASH"), "Store hash identifying the target store")
	root.PersistentFlags().StringVar(&accessToken, "access-token", os.Getenv("COMET_ACCESS_TOKEN"), "API access token")
	root.PersistentFlags().StringVar(&clientID, "client-id", os.Getenv("COMET_CLIENT_ID"), "API client ID")
	root.PersistentFlags().StringVar(&apiBaseURL, "api-base-url", os.Getenv("COMET_API_BASE_URL"), "Absolute base URL of the remote API")
	root.PersistentFlags().IntVar(&maxConcurrency, "max-concurrency", 0, "Maximum concurrent in-flight requests (0 = unbounded)")
	root.PersistentFlags().IntVar(&maxRetries, "max-retries", 0, "Maximum retries after rate limiting (0 = unbounded)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Overall timeout for the operation, retries included")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "error", "Log level (debug, info, warn, error)")

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Comet v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	buildConnector := func() (*connector.Connector, error) {
		if err := logger.Init(logger.Config{Level: logLevel, Encoding: "console"}); err != nil {
			return nil, err
		}

		var cfg *config.ConnectorConfig
		if configFile != "" {
			cfg = &config.ConnectorConfig{}
			if err := config.Load(configFile, cfg); err != nil {
				return nil, err
			}
		} else {
			cfg = config.NewConnectorConfig(storeHash, accessToken, clientID, apiBaseURL)
		}

		if maxConcurrency > 0 {
			cfg.Performance.MaxConcurrentRequests = maxConcurrency
		}
		if maxRetries > 0 {
			cfg.Reliability.MaxRetries = maxRetries
		}
		if cfg.Reliability.RetryMargin == 0 {
			cfg.Reliability.RetryMargin = config.DefaultRetryMargin
		}
		if cfg.Reliability.MinRetryAfter == 0 {
			cfg.Reliability.MinRetryAfter = config.DefaultMinRetryAfter
		}

		return connector.New(cfg, connector.WithLogger(logger.Get()))
	}

	runOp := func(op func(ctx context.Context, conn *connector.Connector) (interface{}, error)) error {
		conn, err := buildConnector()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := op(ctx, conn)
		if err != nil {
			return err
		}

		if result == nil {
			return nil
		}

		out, err := jsonpool.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	// readBody reads the request body from --data or stdin
	readBody := func(data string) (interface{}, error) {
		var body interface{}
		if data == "-" || data == "" {
			if err := jsonpool.DecodeReader(os.Stdin, &body); err != nil {
				return nil, fmt.Errorf("request body on stdin is not valid JSON: %w", err)
			}
			return body, nil
		}

		if err := jsonpool.Unmarshal([]byte(data), &body); err != nil {
			return nil, fmt.Errorf("request body is not valid JSON: %w", err)
		}
		return body, nil
	}

	getCmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Fetch a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(func(ctx context.Context, conn *connector.Connector) (interface{}, error) {
				return conn.Get(ctx, args[0])
			})
		},
	}
	root.AddCommand(getCmd)

	var postData string
	postCmd := &cobra.Command{
		Use:   "post <path>",
		Short: "Create a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(postData)
			if err != nil {
				return err
			}
			return runOp(func(ctx context.Context, conn *connector.Connector) (interface{}, error) {
				return conn.Post(ctx, args[0], body)
			})
		},
	}
	postCmd.Flags().StringVarP(&postData, "data", "d", "", "JSON request body ('-' or empty reads stdin)")
	root.AddCommand(postCmd)

	var putData string
	putCmd := &cobra.Command{
		Use:   "put <path>",
		Short: "Update a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(putData)
			if err != nil {
				return err
			}
			return runOp(func(ctx context.Context, conn *connector.Connector) (interface{}, error) {
				return conn.Put(ctx, args[0], body)
			})
		},
	}
	putCmd.Flags().StringVarP(&putData, "data", "d", "", "JSON request body ('-' or empty reads stdin)")
	root.AddCommand(putCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <path>",
		Short: "Delete a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(func(ctx context.Context, conn *connector.Connector) (interface{}, error) {
				return conn.Delete(ctx, args[0])
			})
		},
	}
	root.AddCommand(deleteCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
