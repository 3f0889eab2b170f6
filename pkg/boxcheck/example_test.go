package boxcheck_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/pkg/boxcheck"
)

func ExampleNormalize() {
	fmt.Println(boxcheck.Normalize(" mscu 663 987 0 "))
	// Output: MSCU6639870
}

func ExampleIsValid() {
	for _, n := range []string{"MSCU6639870", "csqu 305 438 3", "TEMU9876543", "MSCU663987"} {
		fmt.Println(n, boxcheck.IsValid(n))
	}
	// Output:
	// MSCU6639870 true
	// csqu 305 438 3 true
	// TEMU9876543 false
	// MSCU663987 false
}

func ExampleCheckDigit() {
	digit, err := boxcheck.CheckDigit("CSQU305438")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(digit)

	_, err = boxcheck.CheckDigit("CSQU3054")
	fmt.Println(errors.Is(err, boxcheck.ErrInvalidContainerNumber))
	// Output:
	// 3
	// true
}

func ExampleCheck() {
	r := boxcheck.Check("mscu6639871")
	fmt.Println(r.Normalized, r.Valid, r.Reason, r.ExpectedCheckDigit)
	// Output: MSCU6639871 false check_digit 0
}

// Example_client submits an import and later reads back its report.
// It needs a running Redis and is compiled but not executed.
func Example_client() {
	cfg := boxcheck.DefaultConfig()
	cfg.PollInterval = 500 * time.Millisecond

	client, err := boxcheck.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := client.Start(ctx); err != nil {
		log.Fatalf("Failed to start client: %v", err)
	}

	id, err := client.SubmitImport(ctx, &boxcheck.Import{
		Source: "hbl-upload",
		Rows: []boxcheck.Row{
			{Line: 2, Value: "MSCU6639870"},
			{Line: 3, Value: "TEMU9876543"},
		},
		Destination: boxcheck.Destination{URL: "https://tos.example.com/hooks/container-reports"},
		MaxRetries:  3,
		BaseDelay:   5,
	})
	if err != nil {
		log.Fatalf("Failed to submit import: %v", err)
	}

	time.Sleep(time.Second)

	report, err := client.Report(ctx, id)
	if errors.Is(err, boxcheck.ErrImportNotFound) {
		fmt.Println("report not ready yet")
		return
	}
	if err != nil {
		log.Fatalf("Failed to read report: %v", err)
	}
	for _, row := range report.Rows {
		if !row.Valid {
			fmt.Printf("line %d: invalid container number %q\n", row.Line, row.Input)
		}
	}
}

// Example_dependencyInjection registers the client with uber-go/dig.
func Example_dependencyInjection() {
	container := dig.New()

	container.Provide(func() *zap.Logger {
		logger, _ := zap.NewProduction()
		return logger
	})
	container.Provide(func() *boxcheck.Config {
		return &boxcheck.Config{RedisAddr: "localhost:6379", PollInterval: time.Second}
	})

	if err := boxcheck.RegisterWithContainer(container); err != nil {
		log.Fatalf("Failed to register boxcheck: %v", err)
	}

	if err := container.Invoke(boxcheck.StartClient); err != nil {
		log.Fatalf("Failed to start boxcheck: %v", err)
	}
}
