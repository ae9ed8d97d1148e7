// Package export 把抽取出的简历记录序列化成可下载的表示
// JSON直接映射记录字段；CSV/XLSX采用摊平成单行的表格语义，
// 嵌套键用点号连接，列表元素用数字下标展开
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"resume-parser-go/internal/types"
)

// Field 摊平后的一个键值对
type Field struct {
	Key   string
	Value string
}

// Flatten 把记录摊平成有序的键值对序列
// 顺序固定：联系方式 → 技能 → 经历 → 教育，保证导出结果确定
func Flatten(record *types.ResumeRecord) []Field {
	fields := []Field{
		{Key: "contact_info.email", Value: record.ContactInfo.Email},
		{Key: "contact_info.phone", Value: record.ContactInfo.Phone},
	}
	for i, skill := range record.Skills {
		fields = append(fields, Field{Key: "skills." + strconv.Itoa(i), Value: skill})
	}
	for i, exp := range record.Experience {
		prefix := "experience." + strconv.Itoa(i)
		fields = append(fields,
			Field{Key: prefix + ".role", Value: exp.Role},
			Field{Key: prefix + ".company", Value: exp.Company},
			Field{Key: prefix + ".duration", Value: exp.Duration},
		)
	}
	for i, edu := range record.Education {
		prefix := "education." + strconv.Itoa(i)
		fields = append(fields,
			Field{Key: prefix + ".degree", Value: edu.Degree},
			Field{Key: prefix + ".institution", Value: edu.Institution},
			Field{Key: prefix + ".year", Value: edu.Year},
		)
	}
	return fields
}

// ToJSON 序列化为缩进JSON
func ToJSON(record *types.ResumeRecord) ([]byte, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("序列化简历记录失败: %w", err)
	}
	return data, nil
}

// ToCSV 序列化为两行CSV：表头行 + 数据行
func ToCSV(record *types.ResumeRecord) ([]byte, error) {
	fields := Flatten(record)
	headers := make([]string, len(fields))
	values := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.Key
		values[i] = f.Value
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("写CSV表头失败: %w", err)
	}
	if err := w.Write(values); err != nil {
		return nil, fmt.Errorf("写CSV数据行失败: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("生成CSV失败: %w", err)
	}
	return buf.Bytes(), nil
}

// ToXLSX 序列化为单工作表的Excel文件，布局与CSV一致
func ToXLSX(record *types.ResumeRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Resume"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("创建工作表失败: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("删除默认工作表失败: %w", err)
	}

	for i, field := range Flatten(record) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("计算列名失败: %w", err)
		}
		if err := f.SetCellValue(sheet, col+"1", field.Key); err != nil {
			return nil, fmt.Errorf("写表头单元格失败: %w", err)
		}
		if err := f.SetCellValue(sheet, col+"2", field.Value); err != nil {
			return nil, fmt.Errorf("写数据单元格失败: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("生成XLSX失败: %w", err)
	}
	return buf.Bytes(), nil
}
