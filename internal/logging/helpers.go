package logging

// Package-level convenience helpers, one set per category. Info-level
// functions carry the bare category name, matching call sites like
// logging.Suggest("validated %d patterns", n).

// Boot logs an info message to the boot category.
func Boot(format string, args ...interface{}) { Get(CategoryBoot).Info(format, args...) }

// BootDebug logs a debug message to the boot category.
func BootDebug(format string, args ...interface{}) { Get(CategoryBoot).Debug(format, args...) }

// BootWarn logs a warn message to the boot category.
func BootWarn(format string, args ...interface{}) { Get(CategoryBoot).Warn(format, args...) }

// BootError logs an error message to the boot category.
func BootError(format string, args ...interface{}) { Get(CategoryBoot).Error(format, args...) }

// Catalog logs an info message to the catalog category.
func Catalog(format string, args ...interface{}) { Get(CategoryCatalog).Info(format, args...) }

// CatalogDebug logs a debug message to the catalog category.
func CatalogDebug(format string, args ...interface{}) { Get(CategoryCatalog).Debug(format, args...) }

// CatalogWarn logs a warn message to the catalog category.
func CatalogWarn(format string, args ...interface{}) { Get(CategoryCatalog).Warn(format, args...) }

// CatalogError logs an error message to the catalog category.
func CatalogError(format string, args ...interface{}) { Get(CategoryCatalog).Error(format, args...) }

// LLM logs an info message to the llm category.
func LLM(format string, args ...interface{}) { Get(CategoryLLM).Info(format, args...) }

// LLMDebug logs a debug message to the llm category.
func LLMDebug(format string, args ...interface{}) { Get(CategoryLLM).Debug(format, args...) }

// LLMWarn logs a warn message to the llm category.
func LLMWarn(format string, args ...interface{}) { Get(CategoryLLM).Warn(format, args...) }

// LLMError logs an error message to the llm category.
func LLMError(format string, args ...interface{}) { Get(CategoryLLM).Error(format, args...) }

// Suggest logs an info message to the suggest category.
func Suggest(format string, args ...interface{}) { Get(CategorySuggest).Info(format, args...) }

// SuggestDebug logs a debug message to the suggest category.
func SuggestDebug(format string, args ...interface{}) { Get(CategorySuggest).Debug(format, args...) }

// SuggestWarn logs a warn message to the suggest category.
func SuggestWarn(format string, args ...interface{}) { Get(CategorySuggest).Warn(format, args...) }

// SuggestError logs an error message to the suggest category.
func SuggestError(format string, args ...interface{}) { Get(CategorySuggest).Error(format, args...) }

// UI logs an info message to the ui category.
func UI(format string, args ...interface{}) { Get(CategoryUI).Info(format, args...) }

// UIDebug logs a debug message to the ui category.
func UIDebug(format string, args ...interface{}) { Get(CategoryUI).Debug(format, args...) }

// UIWarn logs a warn message to the ui category.
func UIWarn(format string, args ...interface{}) { Get(CategoryUI).Warn(format, args...) }

// UIError logs an error message to the ui category.
func UIError(format string, args ...interface{}) { Get(CategoryUI).Error(format, args...) }
