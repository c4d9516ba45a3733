package series

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

var header = []string{"datetime", "open", "high", "low", "close", "volume"}

var loadLayouts = []string{
	timeLayout,
	"2006-01-02 15:04:05Z07:00",
	time.RFC3339,
}

// FileName 返回一个序列文件的标准命名。
func FileName(symbol, interval, source string) string {
	return fmt.Sprintf("%s_%s_%s.csv", symbol, interval, source)
}

// Save 将序列写入CSV文件，包含表头且按时间升序。
func Save(path string, s Series) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建目录 %q 失败: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建序列文件失败: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}

	for i := 0; i < s.Len(); i++ {
		record := []string{
			s.Timestamps[i].UTC().Format(timeLayout),
			formatFloat(s.Open[i]),
			formatFloat(s.High[i]),
			formatFloat(s.Low[i]),
			formatFloat(s.Close[i]),
			formatFloat(s.Volume[i]),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("写入第%d行失败: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("刷新序列文件失败: %w", err)
	}

	return nil
}

// Load 从CSV文件读取序列，校验表头与时间升序。
func Load(path string) (Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return Series{}, fmt.Errorf("打开序列文件失败: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(header)

	records, err := r.ReadAll()
	if err != nil {
		return Series{}, fmt.Errorf("读取序列文件失败: %w", err)
	}
	if len(records) == 0 {
		return Series{}, fmt.Errorf("序列文件 %q 缺少表头", path)
	}

	for i, name := range header {
		if records[0][i] != name {
			return Series{}, fmt.Errorf("序列文件表头不符: 期望 %v, 实际 %v", header, records[0])
		}
	}

	var s Series
	var prev time.Time
	for i, record := range records[1:] {
		ts, err := parseTime(record[0])
		if err != nil {
			return Series{}, fmt.Errorf("解析第%d行时间失败: %w", i+2, err)
		}
		if i > 0 && !ts.After(prev) {
			return Series{}, fmt.Errorf("序列文件时间未按升序排列: 第%d行 %s", i+2, record[0])
		}
		prev = ts

		values := make([]float64, 5)
		for j := 1; j < len(header); j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return Series{}, fmt.Errorf("解析第%d行 %s 失败: %w", i+2, header[j], err)
			}
			values[j-1] = v
		}

		s.append(ts, values[0], values[1], values[2], values[3], values[4])
	}

	return s, nil
}

func parseTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range loadLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
