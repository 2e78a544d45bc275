// Package api — HTTP слой Stepline.
//
// Тонкий CRUD над workflows, шагами и зависимостями плюс два
// read-only эндпоинта: details (шаги с предпосылками) и
// execution-order (топологический порядок, вычисляемый engine).
//
// Слой не содержит графовой логики: он материализует набор шагов
// и рёбер из репозиториев и передаёт его движку целиком.
package api
