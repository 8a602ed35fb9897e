// Command apitest runs smoke checks against a running lunar API server.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -v
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

// CalendarResponse is the response for /calendar/{date} and /lunar/{y}/{m}/{d}
type CalendarResponse struct {
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	Pillars    map[string]string `json:"pillars"`
	LunarText  string            `json:"lunarText"`
	SolarTerms struct {
		Previous TermDistance `json:"previous"`
		Next     TermDistance `json:"next"`
	} `json:"solarTerms"`
	Reference string            `json:"reference,omitempty"`
	TenGods   map[string]string `json:"tenGods,omitempty"`
}

type TermDistance struct {
	SolarTerm          string  `json:"solarTerm"`
	DiffDistanceDay    int     `json:"diffDistanceDay"`
	DiffDistanceDetail float64 `json:"diffDistanceDetail"`
}

type TenGodResponse struct {
	Reference string `json:"reference"`
	Target    string `json:"target"`
	TenGod    string `json:"tenGod"`
	Short     string `json:"short"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Lunar API Smoke Tests")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)

	tr.testHealth()
	tr.testPillars()
	tr.testLunarConversion()
	tr.testTenGods()
	tr.testEdgeCases()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var data map[string]any
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		tr.recordError("Health", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Health: %v (almanac %v, years %v-%v)",
		data["status"], data["almanac"], data["min_year"], data["max_year"]))
}

func (tr *TestRunner) testPillars() {
	tr.printSection("Four Pillars")

	testCases := []struct {
		date, hour string
		want       [4]string // year, month, day, hour; empty entries are not checked
		desc       string
	}{
		{"2021-02-13", "00", [4]string{"辛丑", "庚寅", "壬辰", "庚子"}, "after 立春, first hour"},
		{"2021-02-02", "12", [4]string{"庚子", "己丑", "", ""}, "before 立春 keeps the old year"},
		{"2019-07-07", "09", [4]string{"己亥", "庚午", "乙巳", "辛巳"}, "day of 小暑"},
		{"2000-01-01", "12", [4]string{"", "", "戊午", ""}, "millennium day pillar"},
		{"1949-10-01", "12", [4]string{"", "", "甲子", ""}, "甲子 day"},
	}

	for _, tc := range testCases {
		resp, err := tr.get(fmt.Sprintf("/api/v1/calendar/%s?time=%s", tc.date, tc.hour))
		if err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		var data CalendarResponse
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		got := [4]string{data.Pillars["year"], data.Pillars["month"], data.Pillars["day"], data.Pillars["hour"]}
		ok := true
		for i, want := range tc.want {
			if want != "" && got[i] != want {
				ok = false
			}
		}
		if ok {
			tr.recordSuccess(fmt.Sprintf("%s %s時: %s %s %s %s (%s)",
				tc.date, tc.hour, got[0], got[1], got[2], got[3], tc.desc))
		} else {
			tr.recordError(tc.date, fmt.Sprintf("pillars %v, want %v", got, tc.want))
		}

		if tr.verbose {
			tr.printCalendarDetail(data)
		}
	}
}

func (tr *TestRunner) testLunarConversion() {
	tr.printSection("Lunar Conversion")

	testCases := []struct {
		path string
		want string
	}{
		{"/api/v1/lunar/2019/6/5", "2019-07-07"},
		{"/api/v1/lunar/2020/4/1?leap=true", "2020-05-23"},
		{"/api/v1/lunar/2021/1/2", "2021-02-13"},
	}

	for _, tc := range testCases {
		resp, err := tr.get(tc.path)
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}

		var data CalendarResponse
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}

		if data.Date == tc.want {
			tr.recordSuccess(fmt.Sprintf("%s → %s (%s)", tc.path, data.Date, data.LunarText))
		} else {
			tr.recordError(tc.path, fmt.Sprintf("date %s, want %s", data.Date, tc.want))
		}
	}
}

func (tr *TestRunner) testTenGods() {
	tr.printSection("Ten Gods")

	resp, err := tr.get("/api/v1/calendar/2021-02-13?time=00&reference=" + url.QueryEscape("壬"))
	if err != nil {
		tr.recordError("Chart with reference", err.Error())
	} else {
		var data CalendarResponse
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			tr.recordError("Chart with reference", err.Error())
		} else if data.TenGods["year"] == "正印" && data.TenGods["day"] == "比肩" {
			tr.recordSuccess(fmt.Sprintf("日主 %s: %v", data.Reference, data.TenGods))
		} else {
			tr.recordError("Chart with reference", fmt.Sprintf("ten gods %v", data.TenGods))
		}
	}

	q := url.Values{"reference": {"壬"}, "target": {"庚"}}
	resp, err = tr.get("/api/v1/ten-god?" + q.Encode())
	if err != nil {
		tr.recordError("Ten god lookup", err.Error())
		return
	}
	var god TenGodResponse
	if err := json.Unmarshal(resp.Data, &god); err != nil {
		tr.recordError("Ten god lookup", err.Error())
		return
	}
	if god.TenGod == "偏印" {
		tr.recordSuccess(fmt.Sprintf("%s → %s: %s (%s)", god.Reference, god.Target, god.TenGod, god.Short))
	} else {
		tr.recordError("Ten god lookup", fmt.Sprintf("got %s, want 偏印", god.TenGod))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	testCases := []struct {
		path   string
		status int
		desc   string
	}{
		{"/api/v1/calendar/invalid", http.StatusBadRequest, "Invalid date format rejected"},
		{"/api/v1/calendar/2021-13-01", http.StatusBadRequest, "Month 13 rejected"},
		{"/api/v1/calendar/2021-02-29", http.StatusBadRequest, "Non-leap February 29 rejected"},
		{"/api/v1/calendar/2021-02-13?time=25", http.StatusBadRequest, "Hour 25 rejected"},
		{"/api/v1/lunar/2019/6/5?leap=true", http.StatusBadRequest, "Missing leap month rejected"},
		{"/api/v1/ten-god?target=" + url.QueryEscape("庚"), http.StatusBadRequest, "Missing reference rejected"},
		{"/api/v1/nope", http.StatusNotFound, "Unknown route returns 404"},
	}

	for _, tc := range testCases {
		resp, err := tr.getRaw(tc.path)
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == tc.status {
			tr.recordSuccess(tc.desc)
		} else {
			tr.recordError(tc.path, fmt.Sprintf("HTTP %d, want %d", resp.StatusCode, tc.status))
		}
	}

	// Hour 24 and hour 0 name the same 子 hour.
	a, errA := tr.get("/api/v1/calendar/2021-02-13?time=00")
	b, errB := tr.get("/api/v1/calendar/2021-02-13?time=24")
	if errA != nil || errB != nil {
		tr.recordError("Midnight alias", fmt.Sprintf("%v %v", errA, errB))
		return
	}
	var da, db CalendarResponse
	json.Unmarshal(a.Data, &da)
	json.Unmarshal(b.Data, &db)
	if da.Pillars["hour"] != "" && da.Pillars["hour"] == db.Pillars["hour"] {
		tr.recordSuccess(fmt.Sprintf("Hours 00 and 24 both give %s", da.Pillars["hour"]))
	} else {
		tr.recordError("Midnight alias", fmt.Sprintf("%q vs %q", da.Pillars["hour"], db.Pillars["hour"]))
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	return tr.client.Get(tr.baseURL + path)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printCalendarDetail(c CalendarResponse) {
	fmt.Printf("    農曆: %s\n", c.LunarText)
	fmt.Printf("    前節氣: %s (%.4f days)\n", c.SolarTerms.Previous.SolarTerm, c.SolarTerms.Previous.DiffDistanceDetail)
	fmt.Printf("    後節氣: %s (%.4f days)\n", c.SolarTerms.Next.SolarTerm, c.SolarTerms.Next.DiffDistanceDetail)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
		return
	}
	fmt.Println("All tests passed! ✓")
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show lunar date and solar terms)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
