// cmd/client/cmd/init.go
package cmd

import (
	"fmt"

	"inkboard/cmd/client/cmd/element"
	"inkboard/cmd/client/cmd/sync"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Инициализировать клиент Inkboard",
	Long: `Команда init выполняет первоначальную настройку клиента:
	1. Создает директорию для локального зеркала доски
	2. Проверяет соединение с сервером`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("=== Инициализация Inkboard ===")
		fmt.Println()

		// Проверяем соединение с сервером
		fmt.Println("Проверка соединения с сервером...")
		if err := app.CheckConnection(); err != nil {
			fmt.Printf("⚠️  Предупреждение: не удалось подключиться к серверу: %v\n", err)
			fmt.Println("Вы можете работать в офлайн-режиме, изменения будут помечены как несинхронизированные.")
		} else {
			fmt.Println("✓ Соединение с сервером установлено")
		}

		if n, err := app.LocalCount(); err == nil {
			fmt.Printf("Локальное зеркало: %d элементов\n", n)
		}

		fmt.Println()
		fmt.Println("✅ Инициализация завершена!")
		fmt.Println()
		fmt.Println("Что дальше:")
		fmt.Println("1. Создайте заметку: inkboard element note --x 100 --y 100 -c \"привет\"")
		fmt.Println("2. Посмотрите доску: inkboard element list")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	// Команды работы с элементами
	rootCmd.AddCommand(element.ElementCmd)
	element.ElementCmd.AddCommand(element.ListCmd)
	element.ElementCmd.AddCommand(element.NoteCmd)
	element.ElementCmd.AddCommand(element.DrawCmd)
	element.ElementCmd.AddCommand(element.MoveCmd)
	element.ElementCmd.AddCommand(element.EditCmd)
	element.ElementCmd.AddCommand(element.DeleteCmd)

	rootCmd.AddCommand(sync.SyncStatusCmd)
}
