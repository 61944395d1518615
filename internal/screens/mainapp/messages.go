package mainapp

import "github.com/Simi-mac/educafin/internal/diary"

// diaryLoadedMsg carries the expenses read from the store.
type diaryLoadedMsg struct {
	expenses []diary.Expense
	err      error
}

// expenseSavedMsg reports the outcome of adding an expense.
type expenseSavedMsg struct {
	err error
}
