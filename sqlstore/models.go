package sqlstore

// securityRow is the GORM model for the securities table.
type securityRow struct {
	Ticker   string `gorm:"primaryKey;size:32"`
	Name     string `gorm:"uniqueIndex;not null"`
	Currency string `gorm:"size:3;not null"`
	Decimals int    `gorm:"not null"`
}

func (securityRow) TableName() string { return "securities" }

// accountRow is the GORM model for the accounts table. Seq keeps the depth
// first order of the tree, so a parent always loads before its sub-accounts.
type accountRow struct {
	FullName string `gorm:"primaryKey"`
	Seq      int    `gorm:"index;not null"`
	Name     string `gorm:"not null"`
	Type     string `gorm:"size:16;not null"`
	Currency string `gorm:"size:3"`
	Parent   string
}

func (accountRow) TableName() string { return "accounts" }

// parentRow is the GORM model for the parents table.
type parentRow struct {
	ID      string `gorm:"primaryKey"`
	Seq     int    `gorm:"index;not null"`
	Date    string `gorm:"size:10;not null"`
	Memo    string
	Account string `gorm:"not null"`
}

func (parentRow) TableName() string { return "parents" }

// splitRow is the GORM model for the splits table. Quantity is stored at the
// scale of the security held by Account.
type splitRow struct {
	ParentID  string `gorm:"primaryKey"`
	SplitNo   int    `gorm:"primaryKey"`
	Account   string `gorm:"index;not null"`
	Quantity  int64  `gorm:"not null"`
	HasAmount bool   `gorm:"not null"`
	Amount    int64
	Currency  string `gorm:"size:3"`
}

func (splitRow) TableName() string { return "splits" }
