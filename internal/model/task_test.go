package model

import (
	"testing"
	"time"
)

func TestDownloadTask_GetSizeString(t *testing.T) {
	tests := []struct {
		downloaded int64
		total      int64
		expected   string
	}{
		{0, 0, "—"},
		{0, 2000000, "—"},
		{1000000, 0, "1.0 MB"},
		{1000000, 2000000, "1.0 MB / 2.0 MB"},
	}

	for _, test := range tests {
		task := &DownloadTask{Downloaded: test.downloaded, Total: test.total}
		result := task.GetSizeString()
		if result != test.expected {
			t.Errorf("GetSizeString() with %d/%d = %s, expected %s", test.downloaded, test.total, result, test.expected)
		}
	}
}

func TestDownloadTask_GetPercentString(t *testing.T) {
	task := &DownloadTask{Percent: 25}
	if got := task.GetPercentString(); got != "25.0%" {
		t.Errorf("GetPercentString() = %s, expected 25.0%%", got)
	}
}

func TestDownloadTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title      string
		outputPath string
		url        string
		expected   string
	}{
		{"Video Title", "", "https://youtu.be/dQw4w9WgXcQ", "Video Title"},
		{"", "", "https://youtu.be/dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ"},
		{"", "/home/user/Downloads/Some_Song.mp3", "https://youtu.be/dQw4w9WgXcQ", "Some_Song"},
		{"", `C:\Users\me\Downloads\Clip.(1).mp4`, "https://youtu.be/dQw4w9WgXcQ", "Clip.(1)"},
		{"https://youtu.be/dQw4w9WgXcQ", "", "https://youtu.be/dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ"},
	}

	for _, test := range tests {
		task := &DownloadTask{
			Title:      test.title,
			OutputPath: test.outputPath,
			URL:        test.url,
		}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with title='%s', path='%s' = '%s', expected '%s'",
				test.title, test.outputPath, result, test.expected)
		}
	}
}

func TestDownloadTask_Elapsed(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	task := &DownloadTask{StartedAt: start, FinishedAt: start.Add(90 * time.Second)}

	if got := task.Elapsed(); got != 90*time.Second {
		t.Errorf("Elapsed() = %v, expected 1m30s", got)
	}

	if got := (&DownloadTask{}).Elapsed(); got != 0 {
		t.Errorf("Elapsed() on a task that never started = %v, expected 0", got)
	}
}
