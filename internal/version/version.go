// Package version хранит сведения о сборке, подставляемые через -ldflags.
package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info возвращает версию, коммит и дату сборки.
func Info() (v, c, d string) { return version, commit, date }

// String собирает сведения о сборке в одну строку для логов и health-отчёта.
func String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", version, commit, date)
}
