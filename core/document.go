package core

// Document 是打分链路中的统一承载结构：原始字段、最终分数。
// Fields 按字段名保存原始值（string/int/float/bool/time.Time），缺失即为 absent。
type Document struct {
	ID     string
	Score  float64
	Fields map[string]any
}

func NewDocument(id string) *Document {
	return &Document{
		ID:     id,
		Fields: make(map[string]any),
	}
}

// Field 读取原始字段值，ok=false 表示字段缺失。
func (d *Document) Field(name string) (any, bool) {
	if d == nil || d.Fields == nil {
		return nil, false
	}
	v, ok := d.Fields[name]
	return v, ok
}

// PutField 写入原始字段值；已存在同名字段时覆盖。
func (d *Document) PutField(name string, value any) {
	if d.Fields == nil {
		d.Fields = make(map[string]any)
	}
	d.Fields[name] = value
}
