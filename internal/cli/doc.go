// Package cli — команды инструмента командной строки stepline.
//
// CLI — тонкий клиент HTTP API: никакой графовой логики здесь нет.
// Команды сгруппированы по ресурсам:
//
//	workflow  — управление workflows (включая details, order и apply)
//	step      — управление шагами
//	dep       — управление зависимостями
//
// Вывод — таблицы через tabwriter или JSON (--json).
package cli
