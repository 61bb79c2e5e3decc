package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// RequestScenario defines one read endpoint to exercise
type RequestScenario struct {
	Name string
	Path func(userID int) string
}

// TestResult contains metrics for a single request
type TestResult struct {
	Scenario     string
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	ScenarioStats      map[string]int
	Lock               sync.Mutex
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 200, "Total number of requests to make")
	userIDsStr := flag.String("u", "100,200,300", "Comma-separated list of user IDs to query")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the operational API")
	delayMs := flag.Int("delay", 50, "Delay between requests in milliseconds")
	flag.Parse()

	var userIDs []int
	for _, idStr := range strings.Split(*userIDsStr, ",") {
		var id int
		if _, err := fmt.Sscanf(idStr, "%d", &id); err == nil && id > 0 {
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) == 0 {
		userIDs = []int{1}
	}

	scenarios := []RequestScenario{
		{"Health", func(int) string { return "/health" }},
		{"Balance USDT", func(id int) string { return fmt.Sprintf("/user/%d/balance?currency=USDT", id) }},
		{"Balance RUB", func(id int) string { return fmt.Sprintf("/user/%d/balance?currency=RUB", id) }},
		{"Recent Deals", func(int) string { return "/deals/recent?limit=20" }},
		{"Deals By Status", func(int) string { return "/deals?status=RELEASED" }},
		{"Pending Withdrawals", func(int) string { return "/withdrawals/pending" }},
	}

	fmt.Printf("Load testing API across %d users: %v\n", len(userIDs), userIDs)
	fmt.Printf("Request scenarios: %d endpoints\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		ScenarioStats:   make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	fmt.Println("Starting worker goroutines...")
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, *delayMs, userIDs, scenarios, jobs, results)
		}()
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	go func() {
		for result := range results {
			stats.Lock.Lock()
			if result.Success {
				stats.SuccessfulRequests++
			} else {
				stats.FailedRequests++
				errMsg := fmt.Sprintf("status %d", result.StatusCode)
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}
			stats.ScenarioStats[result.Scenario]++

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime
			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	wg.Wait()
	close(results)

	// Give the collector a moment to drain
	time.Sleep(100 * time.Millisecond)
	stats.TotalTime = time.Since(startTime)

	printStats(stats)
}

func worker(baseURL string, delayMs int, userIDs []int, scenarios []RequestScenario, jobs <-chan int, results chan<- TestResult) {
	client := &http.Client{Timeout: 10 * time.Second}

	for range jobs {
		scenario := scenarios[rand.Intn(len(scenarios))]
		userID := userIDs[rand.Intn(len(userIDs))]
		url := baseURL + scenario.Path(userID)

		start := time.Now()
		resp, err := client.Get(url)
		elapsed := time.Since(start)

		result := TestResult{Scenario: scenario.Name, ResponseTime: elapsed}
		if err != nil {
			result.Error = err
		} else {
			result.StatusCode = resp.StatusCode
			result.Success = resp.StatusCode == http.StatusOK
			resp.Body.Close()
		}
		results <- result

		time.Sleep(time.Duration(delayMs) * time.Millisecond)
	}
}

func printStats(stats *TestStats) {
	stats.Lock.Lock()
	defer stats.Lock.Unlock()

	fmt.Println("\n=== Results ===")
	fmt.Printf("Total time: %v\n", stats.TotalTime)
	fmt.Printf("Successful: %d / %d\n", stats.SuccessfulRequests, stats.TotalRequests)
	fmt.Printf("Failed: %d\n", stats.FailedRequests)

	if len(stats.ResponseTimes) > 0 {
		avg := stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
		sorted := make([]time.Duration, len(stats.ResponseTimes))
		copy(sorted, stats.ResponseTimes)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		p95 := sorted[len(sorted)*95/100]

		fmt.Printf("Response time min/avg/p95/max: %v / %v / %v / %v\n",
			stats.MinResponseTime, avg, p95, stats.MaxResponseTime)
		fmt.Printf("Throughput: %.1f req/s\n",
			float64(stats.TotalRequests)/stats.TotalTime.Seconds())
	}

	fmt.Println("\nRequests per scenario:")
	for name, count := range stats.ScenarioStats {
		fmt.Printf("  %-20s %d\n", name, count)
	}

	if len(stats.ErrorCounts) > 0 {
		fmt.Println("\nErrors:")
		for msg, count := range stats.ErrorCounts {
			fmt.Printf("  %-40s %d\n", msg, count)
		}
	}
}
