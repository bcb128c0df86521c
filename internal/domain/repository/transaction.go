package repository

import "context"

// TransactionManager scopes a unit of work. Execute acquires a transaction, hands
// transaction-bound repositories to fn, and releases the transaction on every exit path:
// commit when fn returns nil, rollback when it returns an error or panics.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repositories bound to one transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	NoteRepo() NoteRepository
}
