// Package fuzztests houses Go fuzz harnesses for the validation pipeline
// (source -> lexer -> parser -> sema). Its goal is to guard against panics,
// hangs and broken spans on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер, парсер
// и driver.Validate, проверяя инварианты результата.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/driver, internal/testkit.
package fuzztests
