package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("CODECLEANER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	fmt.Println("Starting smoke test against", baseURL)

	// 1. Clean
	fmt.Println("1. Cleaning hello.js...")
	body, contentType, err := uploadBody("hello.js", []byte("var x=1;function f(a,b){return a+b}"))
	if err != nil {
		fmt.Printf("Error building upload: %v\n", err)
		os.Exit(1)
	}

	var cleaned struct {
		Language     string `json:"language"`
		Cleaned      string `json:"cleaned"`
		DownloadName string `json:"download_name"`
	}
	if !sendRequest(baseURL+"/api/clean", contentType, body, &cleaned) {
		fmt.Println("FAILED: Clean")
		os.Exit(1)
	}
	if cleaned.DownloadName != "hello_cleaned.js" {
		fmt.Printf("FAILED: unexpected download name %q\n", cleaned.DownloadName)
		os.Exit(1)
	}
	fmt.Println("PASSED: Clean")

	// 2. Explain
	fmt.Println("2. Explaining cleaned code...")
	payload, _ := json.Marshal(map[string]string{"code": cleaned.Cleaned, "language": cleaned.Language})
	var explained struct {
		Text string `json:"text"`
	}
	if !sendRequest(baseURL+"/api/explain", "application/json", bytes.NewReader(payload), &explained) {
		fmt.Println("FAILED: Explain")
		os.Exit(1)
	}
	fmt.Println("PASSED: Explain")
}

func uploadBody(name string, content []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(content); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func sendRequest(url, contentType string, body io.Reader, out any) bool {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}
	fmt.Printf("Response: %s\n", string(respBody))

	if err := json.Unmarshal(respBody, out); err != nil {
		fmt.Printf("Error decoding response: %v\n", err)
		return false
	}
	return true
}
