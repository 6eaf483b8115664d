// Command matchcore-bench replays a synthetic order feed through one
// MatchingEngine/OrderBook pair and reports submit/cancel latency
// statistics. It is a CLI tool, not a test, and is never run by `go test`.
package main

import (
	"flag"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/Aidin1998/matchcore/internal/trading/engine"
	"github.com/Aidin1998/matchcore/internal/trading/model"
	"github.com/Aidin1998/matchcore/internal/trading/orderbook"
)

func main() {
	orders := flag.Int("orders", 2_000_000, "number of synthetic resting orders to add, then match, then cancel")
	maxPrice := flag.Uint64("max-price", 10000, "inclusive price ceiling for the synthetic book")
	flag.Parse()

	book, err := orderbook.New(*orders+1000, *maxPrice)
	if err != nil {
		fmt.Println("failed to construct order book:", err)
		return
	}
	eng := engine.New(zap.NewNop(), nil)
	l := engine.NoOpListener{}

	addLatencies := make([]time.Duration, *orders)
	for i := 0; i < *orders; i++ {
		order := model.Order{ID: uint64(i + 1), Quantity: 100, Price: *maxPrice / 2, Side: model.Sell}
		start := time.Now()
		if err := eng.Submit(book, order, l, ""); err != nil {
			fmt.Println("submit failed:", err)
			return
		}
		addLatencies[i] = time.Since(start)
	}
	report("add resting order", addLatencies)

	matchLatencies := make([]time.Duration, *orders)
	for i := 0; i < *orders; i++ {
		order := model.Order{ID: uint64(*orders + 1 + i), Quantity: 100, Price: *maxPrice / 2, Side: model.Buy}
		start := time.Now()
		if err := eng.Submit(book, order, l, ""); err != nil {
			fmt.Println("submit failed:", err)
			return
		}
		matchLatencies[i] = time.Since(start)
	}
	report("match order", matchLatencies)

	book2, err := orderbook.New(*orders+1000, *maxPrice)
	if err != nil {
		fmt.Println("failed to construct order book:", err)
		return
	}
	for i := 0; i < *orders; i++ {
		order := model.Order{ID: uint64(i + 1), Quantity: 100, Price: *maxPrice / 2, Side: model.Sell}
		if err := eng.Submit(book2, order, l, ""); err != nil {
			fmt.Println("submit failed:", err)
			return
		}
	}
	cancelLatencies := make([]time.Duration, *orders)
	for i := 0; i < *orders; i++ {
		start := time.Now()
		if err := eng.Cancel(book2, uint64(i+1), l, ""); err != nil {
			fmt.Println("cancel failed:", err)
			return
		}
		cancelLatencies[i] = time.Since(start)
	}
	report("cancel order", cancelLatencies)
}

func report(label string, samples []time.Duration) {
	mean, stddev := meanAndStdDev(samples)
	fmt.Printf("[%s] mean(latency) = %0.2fns, sd(latency) = %0.2fns, n = %d\n", label, mean, stddev, len(samples))
}

func meanAndStdDev(samples []time.Duration) (mean, stddev float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s)
	}
	mean = sum / float64(len(samples))

	var sumSquares float64
	for _, s := range samples {
		d := float64(s) - mean
		sumSquares += d * d
	}
	stddev = math.Sqrt(sumSquares / float64(len(samples)))
	return mean, stddev
}
