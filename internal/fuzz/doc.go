// Package fuzztests houses Go fuzz harnesses for the scanning pipeline
// (source -> parser -> match -> normalize). They guard against panics,
// hangs and broken span invariants on arbitrary Python-ish input.
//
// Назначение: загружать байты в FileSet и прогонять их через парсер,
// матчер и нормализатор.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
