package main

import (
	"FragFS/internal/platform/api/zmq"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-zeromq/zmq4"
	json "github.com/json-iterator/go"
)

var errTimeout = errors.New("request timeout")

type RequestResult struct {
	Action   string
	Duration time.Duration
	Success  bool
	TimedOut bool
}

type BenchmarkStats struct {
	TotalRequests      int64
	SuccessfulRequests int64
	RejectedRequests   int64
	TimeoutRequests    int64
	ResponseTimes      []time.Duration
	PerAction          map[string]int64
	StartTime          time.Time
	EndTime            time.Time
	mu                 sync.Mutex
}

func (b *BenchmarkStats) AddResult(result RequestResult) {
	atomic.AddInt64(&b.TotalRequests, 1)
	switch {
	case result.TimedOut:
		atomic.AddInt64(&b.TimeoutRequests, 1)
	case result.Success:
		atomic.AddInt64(&b.SuccessfulRequests, 1)
	default:
		// full disk, missing file and the like are answers, not failures
		atomic.AddInt64(&b.RejectedRequests, 1)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.ResponseTimes = append(b.ResponseTimes, result.Duration)
	b.PerAction[result.Action]++
}

func (b *BenchmarkStats) Percentile(p float64) time.Duration {
	if len(b.ResponseTimes) == 0 {
		return 0
	}
	idx := int(float64(len(b.ResponseTimes)) * p)
	if idx >= len(b.ResponseTimes) {
		idx = len(b.ResponseTimes) - 1
	}
	return b.ResponseTimes[idx]
}

func (b *BenchmarkStats) GetRPS() float64 {
	duration := b.EndTime.Sub(b.StartTime).Seconds()
	if duration == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&b.TotalRequests)) / duration
}

type ZmqClient struct {
	socket  zmq4.Socket
	timeout time.Duration
}

func NewZmqClient(address string, timeout time.Duration) (*ZmqClient, error) {
	socket := zmq4.NewReq(context.Background())
	if err := socket.Dial(address); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return &ZmqClient{socket: socket, timeout: timeout}, nil
}

func (c *ZmqClient) SendRequest(req zmq.ApiRequest) (zmq.ApiResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return zmq.ApiResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}
	if err := c.socket.Send(zmq4.NewMsg(payload)); err != nil {
		return zmq.ApiResponse{}, fmt.Errorf("failed to send request: %w", err)
	}

	msgChan := make(chan zmq4.Msg, 1)
	errChan := make(chan error, 1)
	go func() {
		msg, err := c.socket.Recv()
		if err != nil {
			errChan <- err
			return
		}
		msgChan <- msg
	}()

	select {
	case msg := <-msgChan:
		var resp zmq.ApiResponse
		if err := json.Unmarshal(msg.Bytes(), &resp); err != nil {
			return zmq.ApiResponse{}, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return resp, nil
	case err := <-errChan:
		return zmq.ApiResponse{}, err
	case <-time.After(c.timeout):
		return zmq.ApiResponse{}, errTimeout
	}
}

func (c *ZmqClient) Close() error {
	return c.socket.Close()
}

// worker churns a small set of its own files so the disk fragments, and asks
// for a defragment now and then.
func worker(id int, address string, timeout, duration time.Duration, maxSize float64,
	stats *BenchmarkStats, wg *sync.WaitGroup) {
	defer wg.Done()

	client, err := NewZmqClient(address, timeout)
	if err != nil {
		log.Printf("Worker %d failed to create client: %v", id, err)
		return
	}
	defer client.Close()

	actions := []string{zmq.CREATE, zmq.CREATE, zmq.RESIZE, zmq.DELETE, zmq.DEFRAGMENT}
	endTime := time.Now().Add(duration)
	for time.Now().Before(endTime) {
		req := zmq.ApiRequest{
			Action: actions[rand.Intn(len(actions))],
			Name:   fmt.Sprintf("w%d_f%d", id, rand.Intn(8)),
			Size:   math.Round((0.1+rand.Float64()*maxSize)*100) / 100,
		}

		start := time.Now()
		resp, err := client.SendRequest(req)
		stats.AddResult(RequestResult{
			Action:   req.Action,
			Duration: time.Since(start),
			Success:  err == nil && resp.Success,
			TimedOut: errors.Is(err, errTimeout),
		})
		if err != nil && !errors.Is(err, errTimeout) {
			log.Printf("Worker %d: %v", id, err)
			return
		}
		time.Sleep(time.Millisecond)
	}
	log.Printf("Worker %d completed", id)
}

func printResults(stats *BenchmarkStats) {
	sort.Slice(stats.ResponseTimes, func(i, j int) bool {
		return stats.ResponseTimes[i] < stats.ResponseTimes[j]
	})

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("BENCHMARK RESULTS")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Duration: %v\n", stats.EndTime.Sub(stats.StartTime))
	fmt.Printf("Total Requests: %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d\n", stats.SuccessfulRequests)
	fmt.Printf("Rejected Requests: %d\n", stats.RejectedRequests)
	fmt.Printf("Timeout Requests: %d\n", stats.TimeoutRequests)
	fmt.Printf("RPS: %.2f\n", stats.GetRPS())

	fmt.Println("\nREQUESTS PER ACTION:")
	for action, count := range stats.PerAction {
		fmt.Printf("%-12s %d\n", action, count)
	}

	fmt.Println("\nRESPONSE TIME PERCENTILES:")
	for _, p := range []float64{0.50, 0.90, 0.99, 0.999} {
		fmt.Printf("p%v: %v\n", p*100, stats.Percentile(p))
	}
	fmt.Println(strings.Repeat("=", 60))
}

func main() {
	var (
		address  = flag.String("address", "tcp://localhost:5555", "ZMQ API address")
		workers  = flag.Int("workers", 4, "Number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "Test duration")
		timeout  = flag.Duration("timeout", 5*time.Second, "Request timeout")
		maxSize  = flag.Float64("max-size", 3, "Largest file size requested, in blocks")
	)
	flag.Parse()

	fmt.Printf("Starting benchmark with %d workers for %v against %s\n", *workers, *duration, *address)

	stats := &BenchmarkStats{
		StartTime: time.Now(),
		PerAction: make(map[string]int64),
	}
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go worker(i, *address, *timeout, *duration, *maxSize, stats, &wg)
	}
	wg.Wait()
	stats.EndTime = time.Now()

	printResults(stats)
}
