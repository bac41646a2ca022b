package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name OddsBoardProvider --dir ../usecase --output usecase --outpkg usecasemock --filename odds_board_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ProjectionsProvider --dir ../usecase --output usecase --outpkg usecasemock --filename projections_provider_mock.go
