// Package mq — обмен событиями через RabbitMQ.
//
// API публикует события об изменении workflows (создание, добавление
// шага или зависимости, удаление), валидатор потребляет их и заново
// проверяет граф затронутого workflow.
//
// Очередь — это оптимизация отзывчивости, а не источник истины:
// при потере события валидатор всё равно доберётся до workflow
// в очередном периодическом проходе.
package mq
