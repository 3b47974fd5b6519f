package store

import (
	"fmt"

	"github.com/custodia-network/custodia/lib"
)

func ErrOpenDB(err error) lib.ErrorI {
	return lib.NewError(lib.CodeOpenDB, lib.StorageModule, lib.InternalError, fmt.Sprintf("openDB() failed with err: %s", err.Error()))
}

func ErrCloseDB(err error) lib.ErrorI {
	return lib.NewError(lib.CodeCloseDB, lib.StorageModule, lib.InternalError, fmt.Sprintf("closeDB() failed with err: %s", err.Error()))
}

func ErrCommitDB(err error) lib.ErrorI {
	return lib.NewError(lib.CodeCommitDB, lib.StorageModule, lib.InternalError, fmt.Sprintf("commitDB() failed with err: %s", err.Error()))
}

func ErrStoreSet(err error) lib.ErrorI {
	return lib.NewError(lib.CodeStoreSet, lib.StorageModule, lib.InternalError, fmt.Sprintf("storeSet() failed with err: %s", err.Error()))
}

func ErrStoreGet(err error) lib.ErrorI {
	return lib.NewError(lib.CodeStoreGet, lib.StorageModule, lib.InternalError, fmt.Sprintf("storeGet() failed with err: %s", err.Error()))
}

func ErrStoreDelete(err error) lib.ErrorI {
	return lib.NewError(lib.CodeStoreDelete, lib.StorageModule, lib.InternalError, fmt.Sprintf("storeDelete() failed with err: %s", err.Error()))
}

func ErrNilKey() lib.ErrorI {
	return lib.NewError(lib.CodeNilKey, lib.StorageModule, lib.InternalError, "key is nil")
}
