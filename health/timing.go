package health

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// TrackTime logs the time taken by the method. Usage - as the first line in a method: defer health.TrackTime(time.Now(), "methodName")
func TrackTime(start time.Time, name string) {
	elapsed := time.Since(start)
	fmt.Println(name, "took", elapsed.Round(time.Millisecond))
}

// accumulated timings, guarded so concurrent workers can record safely
var (
	timingMutex   sync.Mutex
	elapsedMap    = make(map[string]int64)
	invocationMap = make(map[string]int64)
)

// RecordTime accumulates the time taken by the method for a later LogTime call
func RecordTime(start time.Time, name string) {
	elapsed := time.Since(start)
	timingMutex.Lock()
	elapsedMap[name] += elapsed.Nanoseconds()
	invocationMap[name]++
	timingMutex.Unlock()
}

// LogTime prints the accumulated timings and resets them
func LogTime() {
	timingMutex.Lock()
	defer timingMutex.Unlock()

	names := make([]string, 0, len(invocationMap))
	for name := range invocationMap {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		elapsed := time.Duration(elapsedMap[name]).Round(time.Millisecond)
		fmt.Println(name, "took", elapsed, "over", invocationMap[name], "invocations")
	}
	elapsedMap = make(map[string]int64)
	invocationMap = make(map[string]int64)
}
