package pub

const (
	executionResultSchema = `
		{
			"type": "record",
			"name": "ExecutionResults",
			"namespace": "org.ledger.dex.model.avro",
			"fields": [
				{ "name": "height", "type": "long" },
				{ "name": "timestamp", "type": "long" },
				{ "name": "numOfMsgs", "type": "int" },
				{ "name": "trades", "type": ["null", {
					"type": "record",
					"name": "Trades",
					"namespace": "org.ledger.dex.model.avro",
					"fields": [
						{ "name": "numOfMsgs", "type": "int" },
						{ "name": "trades", "type": {
							"type": "array",
							"items":
								{
									"type": "record",
									"name": "Trade",
									"namespace": "org.ledger.dex.model.avro",
									"fields": [
										{ "name": "id", "type": "string" },
										{ "name": "symbol", "type": "string" },
										{ "name": "makerId", "type": "string" },
										{ "name": "takerId", "type": "string" },
										{ "name": "makerAddr", "type": "string" },
										{ "name": "takerAddr", "type": "string" },
										{ "name": "makerPays", "type": "string" },
										{ "name": "takerPays", "type": "string" },
										{ "name": "makerFee", "type": "string" },
										{ "name": "takerFee", "type": "string" }
									]
								}
							}
						}
					]
				}], "default": null }
			]
		}
	`

	blockFeeSchema = `
		{
			"type": "record",
			"name": "BlockFee",
			"namespace": "org.ledger.dex.model.avro",
			"fields": [
				{ "name": "height", "type": "long"},
				{ "name": "fees", "type": { "type": "array", "items": {
					"type": "record",
					"name": "AssetFee",
					"namespace": "org.ledger.dex.model.avro",
					"fields": [
						{ "name": "symbol", "type": "string" },
						{ "name": "amount", "type": "long" }
					]
				}}}
			]
		}
	`
)
