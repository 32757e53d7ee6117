package bash

// header opens the script and its completion function.
// Every %[1]s is the program name.
const header = `#!bash
#
# %[1]s Bash Completion
# =======================
#
# Bash completion support for %[1]s,
# generated by [reeflective/autocomplete](https://github.com/reeflective/autocomplete).
#
# Installation
# ------------
#
# 1. Place it in a ` + "`bash-completion.d`" + ` folder:
#
#   * /etc/bash-completion.d
#   * /usr/local/etc/bash-completion.d
#   * ~/bash-completion.d
#
# 2. Open new bash, and type ` + "`%[1]s [TAB][TAB]`" + `
#
# Documentation
# -------------
# The script is called by bash whenever [TAB] or [TAB][TAB] is pressed after
# '%[1]s (..)'. By reading entered command line parameters, it determines possible
# bash completions and writes them to the COMPREPLY variable. Bash then
# completes the user input if only one entry is listed in the variable or
# shows the options if more than one is listed in COMPREPLY.
#
# The script first determines the current parameter ($cur), the previous
# parameter ($prev), and the command being completed ($cmd), by walking the
# words already typed. Each command has a list of subcommands and a list of
# options, which are the candidates for $complete_words and $complete_options.
#
# If the current user input ($cur) starts with '-', only $complete_options are
# displayed/completed, otherwise only $complete_words. Arguments of options
# and positional arguments are completed with their choices, files or directories.
#
# References
# ----------
# [1] http://stackoverflow.com/a/12495480/1440785
# [2] http://tiswww.case.edu/php/chet/bash/FAQ
#

shopt -s progcomp
_%[1]s() {
`
