package ynab

// Wire types mirroring the YNAB v1 API payloads this client consumes.
// Amounts are milliunits: currency units multiplied by 1000.

type transactionsResponse struct {
	Data struct {
		Transactions []wireTransaction `json:"transactions"`
	} `json:"data"`
}

type wireTransaction struct {
	PayeeName         *string `json:"payee_name"`
	CategoryID        *string `json:"category_id"`
	TransferAccountID *string `json:"transfer_account_id"`
	Memo              *string `json:"memo"`
	ID                string  `json:"id"`
	Date              string  `json:"date"`
	AccountName       string  `json:"account_name"`
	Amount            int64   `json:"amount"`
	Deleted           bool    `json:"deleted"`
}

type categoriesResponse struct {
	Data struct {
		CategoryGroups []wireCategoryGroup `json:"category_groups"`
	} `json:"data"`
}

type wireCategoryGroup struct {
	Name       string         `json:"name"`
	Categories []wireCategory `json:"categories"`
}

type wireCategory struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Budgeted int64  `json:"budgeted"`
	Activity int64  `json:"activity"`
	Balance  int64  `json:"balance"`
	Hidden   bool   `json:"hidden"`
}

type monthResponse struct {
	Data struct {
		Month struct {
			Categories []wireCategory `json:"categories"`
		} `json:"month"`
	} `json:"data"`
}

type updateTransactionRequest struct {
	Transaction struct {
		CategoryID string `json:"category_id"`
	} `json:"transaction"`
}
