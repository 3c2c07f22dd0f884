package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX），可穿透 fmt.Errorf("%w") 包装
//
// 使用场景：
//   - Column 错误：COLUMN_TYPE
//   - Aggregate 错误：EMPTY_INPUT, INVALID_INPUT
//   - Analyzer 错误：ANALYZER_UNAVAILABLE
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "COLUMN_TYPE", "EMPTY_INPUT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "column", "aggregate", "analysis"）
	Err     error  // 底层原因（可选）
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// WrapDomainError 创建携带底层原因的领域错误
func WrapDomainError(module, code, message string, cause error) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// IsDomainError 检查错误链中是否有 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取错误链中第一个 DomainError，如果没有则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeColumnType          = "COLUMN_TYPE"          // 字段值无法转换为目标类型
	ErrorCodeEmptyInput          = "EMPTY_INPUT"          // 聚合输入为空且模式无单位元
	ErrorCodeAnalyzerUnavailable = "ANALYZER_UNAVAILABLE" // 分词器失败或不可达
	ErrorCodeNotFound            = "NOT_FOUND"            // 资源不存在
	ErrorCodeNotSupported        = "NOT_SUPPORTED"        // 操作不支持
	ErrorCodeInvalidInput        = "INVALID_INPUT"        // 输入无效
)

// 模块名称常量
const (
	ModuleColumn    = "column"
	ModuleFunction  = "function"
	ModuleAggregate = "aggregate"
	ModuleAnalysis  = "analysis"
	ModuleRule      = "rule"
	ModuleStore     = "store"
	ModuleSource    = "source"
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsColumnType 检查错误是否为 COLUMN_TYPE
func IsColumnType(err error) bool { return hasCode(err, ErrorCodeColumnType) }

// IsEmptyInput 检查错误是否为 EMPTY_INPUT
func IsEmptyInput(err error) bool { return hasCode(err, ErrorCodeEmptyInput) }

// IsAnalyzerUnavailable 检查错误是否为 ANALYZER_UNAVAILABLE
func IsAnalyzerUnavailable(err error) bool { return hasCode(err, ErrorCodeAnalyzerUnavailable) }

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool { return hasCode(err, ErrorCodeNotSupported) }

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }
