// Package engine содержит ядро Stepline — граф зависимостей шагов
// и вычисление порядка выполнения.
//
// Включает:
//   - graph.go  — построение графа и топологическая сортировка (алгоритм Кана)
//   - errors.go — ошибки построения графа и обнаружения циклов
//
// Движок — чистая функция своих входов: граф собирается заново на каждый
// вызов из уже материализованного набора шагов и рёбер, никакого разделяемого
// состояния между вызовами нет. Конкурентные вызовы не требуют блокировок.
package engine
